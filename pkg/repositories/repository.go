package repositories

import (
	"context"

	"github.com/parlorgames/parlor/pkg/repositories/models"
)

// Repository maps verified external identities to numeric user ids.
// CreateUser is idempotent: an already registered external uid returns
// the existing user.
type Repository interface {
	Close(ctx context.Context) error
	CreateUser(ctx context.Context, externalUID string) (*models.User, error)
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}
