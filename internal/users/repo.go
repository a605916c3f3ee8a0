package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repo persists user profiles captured at login.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
