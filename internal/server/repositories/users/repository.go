// Package users persists accounts. The storage layer owns the email
// uniqueness constraint; a violation surfaces as common.ErrAlreadyExists.
package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update overwrites the mutable columns of an existing row.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByStatus(ctx context.Context, status models.AccountStatus) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
