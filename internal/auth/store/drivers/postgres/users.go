package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/auth/domain"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) get(ctx context.Context, query, arg string) (domain.User, error) {
	row, err := r.q.getUser(ctx, query, arg)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, getUserByID, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.get(ctx, getUserByUsername, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, getUserByEmail, email)
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ok, err := r.q.exists(ctx, existsByUsername, username)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ok, err := r.q.exists(ctx, existsByEmail, email)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if len(u.Roles) == 0 {
		u.Roles = domain.DefaultRoles()
	}

	err := r.q.createUser(ctx, userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Roles:        domain.EncodeRoles(u.Roles),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, fullName, email string) error {
	err := r.q.execOne(ctx, updateUserProfile, fullName, email, time.Now().UTC(), userID)
	return mapConstraint(mapNotFound(err))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return mapNotFound(r.q.execOne(ctx, updateUserPasswordHash, newHash, time.Now().UTC(), userID))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return mapNotFound(r.q.execOne(ctx, deleteUser, userID))
}
