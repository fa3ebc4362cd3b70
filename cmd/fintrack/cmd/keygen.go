package cmd

import (
	"fmt"

	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a new random signing key",
	Long: `Prints a base64 encoded 256-bit HS256 key, suitable for AUTH_JWT_SECRET.

  export AUTH_JWT_SECRET=$(fintrack keygen)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := jwtx.GenerateSecret()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), secret)
		return err
	},
}
