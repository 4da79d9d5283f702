package users

import (
	"context"
)

// Repository is the user store the auth service depends on. Implementations
// must return common.ErrorNotFound from GetUserByEmail when no user has the
// given email, and common.ErrorAlreadyExists from Create when the email is
// already taken.
type Repository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
