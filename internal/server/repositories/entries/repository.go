// Package entries persists entries. Every read, update, and delete is scoped
// by (id, owner id) or (owner id); an entry is never reachable by id alone.
package entries

import (
	"context"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Entry, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Entry, error)
	ListByStatus(ctx context.Context, ownerID uuid.UUID, status models.EntryStatus) ([]models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// Delete reports whether a row was removed; a miss is not an error.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}
