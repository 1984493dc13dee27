package users

import "context"

type Repo interface {
	// Create stores the user and its email index entry; ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
