/*
Package authsdk provides a client SDK for the fintrack API and the wire
types shared with the server handlers.

# SDKClient vs Session

  - SDKClient: public endpoints (login, register, availability checks, health)
  - Session: endpoints that need a bearer token

	client := authsdk.NewSDKClient("http://localhost:8080")

	// Either a username or an email works as the identifier
	session, err := client.Authenticate(ctx, "bob@x.com", "pw123")
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// unknown account or wrong password, the server does not say which
	}

	user, err := session.GetUserInfo(ctx)

# Tokens

Tokens are HS256, fixed lifetime and not refreshable. Changing the password
or deleting the account does not revoke tokens already issued; a token for
a deleted account simply stops resolving and requests come back 401.

# Errors

Every non-2xx response decodes into *APIError. Compare with errors.Is
against the predefined values, which match on status and code.
*/
package authsdk
