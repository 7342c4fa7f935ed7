// Package users declares the server-side repository contract for user
// account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository defines persistence operations for users.
type Repository interface {
	// Create stores a new user. Implementations must return
	// common.ErrorAlreadyExists when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail looks up a user by email. Implementations should
	// return a not-found error when the user is absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
