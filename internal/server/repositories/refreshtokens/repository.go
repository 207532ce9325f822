// Package refreshtokens persists server-stored refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
