package domain

import "context"

// UserRepository is the persistence port for user accounts. Update persists
// the already-merged record; it must report duplicate unique fields through
// ErrDuplicateEmail / ErrDuplicateUsername.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
