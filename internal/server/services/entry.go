// This file implements EntryService: the entry lifecycle (draft -> private ->
// scheduled, with release derived rather than stored) and the ownership
// isolation rules around it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/authz"
	"github.com/everkeep/everkeep/internal/server/models"
	"github.com/everkeep/everkeep/internal/server/repositories/repomanager"
	"github.com/everkeep/everkeep/internal/server/validation"
)

// EntryInput is the caller-supplied draft for Save. Updates resupply the full
// field set; there is no partial patch. Empty Type and Status map to the
// documented defaults (journal, draft).
type EntryInput struct {
	ID                  *uuid.UUID
	OwnerID             uuid.UUID
	Content             string
	Type                models.EntryType
	Status              models.EntryStatus
	ReleaseType         *models.ReleaseType
	ReleaseDate         *time.Time
	ReleaseContactEmail *string
}

type EntryService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager

	// now is a seam for release-guard tests.
	now func() time.Time
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager) *EntryService {
	return &EntryService{db: db, repos: m, now: time.Now}
}

// Save creates or updates an entry on behalf of actor. The ownership check
// runs first, then the full validation rule set; only then is storage
// touched. An update targets the row scoped by (id, owner id): a foreign or
// missing id is the same NotFoundError either way. An entry whose date
// release has already fired can no longer be modified.
func (s *EntryService) Save(ctx context.Context, actor *models.User, input EntryInput) (*models.Entry, error) {
	action := authz.ActionEntryCreate
	if input.ID != nil {
		action = authz.ActionEntryUpdate
	}
	if err := authz.Check(actor, action, authz.Target{OwnerID: input.OwnerID}); err != nil {
		return nil, err
	}

	draft := models.Entry{
		Content:             input.Content,
		Type:                input.Type,
		Status:              input.Status,
		ReleaseType:         input.ReleaseType,
		ReleaseDate:         input.ReleaseDate,
		ReleaseContactEmail: input.ReleaseContactEmail,
	}
	if err := validation.Entry(&draft); err != nil {
		return nil, err
	}

	// Total mapping for the optional enums: one default each.
	if draft.Type == "" {
		draft.Type = models.EntryJournal
	}
	if draft.Status == "" {
		draft.Status = models.EntryDraft
	}

	now := s.now()
	repo := s.repos.Entries(s.db)

	if input.ID == nil {
		draft.ID = uuid.New()
		draft.OwnerID = input.OwnerID
		draft.CreatedAt = now
		draft.UpdatedAt = now

		created, err := repo.Create(ctx, &draft)
		if err != nil {
			return nil, fmt.Errorf("creating entry: %w", err)
		}
		return created, nil
	}

	existing, err := repo.Get(ctx, *input.ID, input.OwnerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("Entry not found")
		}
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	if existing.Released(now) {
		return nil, common.ValidationError("Entry has already been released")
	}

	existing.Content = draft.Content
	existing.Type = draft.Type
	existing.Status = draft.Status
	existing.ReleaseType = draft.ReleaseType
	existing.ReleaseDate = draft.ReleaseDate
	existing.ReleaseContactEmail = draft.ReleaseContactEmail
	existing.UpdatedAt = now

	updated, err := repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("Entry not found")
		}
		return nil, fmt.Errorf("updating entry: %w", err)
	}
	return updated, nil
}

// Get returns one of the actor's entries. A foreign id is a NotFoundError,
// never a distinguishable "forbidden".
func (s *EntryService) Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Entry, error) {
	if err := authz.Check(actor, authz.ActionEntryRead, actorTarget(actor)); err != nil {
		return nil, err
	}

	entry, err := s.repos.Entries(s.db).Get(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("Entry not found")
		}
		return nil, fmt.Errorf("loading entry: %w", err)
	}
	return entry, nil
}

// List returns all of the actor's entries.
func (s *EntryService) List(ctx context.Context, actor *models.User) ([]models.Entry, error) {
	if err := authz.Check(actor, authz.ActionEntryRead, actorTarget(actor)); err != nil {
		return nil, err
	}

	list, err := s.repos.Entries(s.db).List(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return list, nil
}

// ListByStatus returns the actor's entries in one lifecycle state.
func (s *EntryService) ListByStatus(ctx context.Context, actor *models.User, status models.EntryStatus) ([]models.Entry, error) {
	if err := authz.Check(actor, authz.ActionEntryRead, actorTarget(actor)); err != nil {
		return nil, err
	}
	if err := validation.Entry(&models.Entry{Status: status}); err != nil {
		return nil, err
	}

	list, err := s.repos.Entries(s.db).ListByStatus(ctx, actor.ID, status)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return list, nil
}

// Delete removes one of the actor's entries. Idempotent: a second delete, or
// a delete of a foreign id, is a silent no-op.
func (s *EntryService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if err := authz.Check(actor, authz.ActionEntryDelete, actorTarget(actor)); err != nil {
		return err
	}

	if _, err := s.repos.Entries(s.db).Delete(ctx, id, actor.ID); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

func actorTarget(actor *models.User) authz.Target {
	if actor == nil {
		return authz.Target{}
	}
	return authz.Target{OwnerID: actor.ID}
}
