package httpapi

import (
	"net/http"
	"time"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
	"github.com/everkeep/everkeep/internal/server/services"
)

type entryRequest struct {
	Content             string              `json:"content"`
	Type                models.EntryType    `json:"type"`
	Status              models.EntryStatus  `json:"status"`
	ReleaseType         *models.ReleaseType `json:"release_type"`
	ReleaseDate         *time.Time          `json:"release_date"`
	ReleaseContactEmail *string             `json:"release_contact_email"`
}

// handleSaveEntry serves both POST /entries and PUT /entries/{id}. The
// presence of a path id decides between create and update; the owner is
// always the authenticated actor.
func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	var req entryRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	input := services.EntryInput{
		OwnerID:             actor.ID,
		Content:             req.Content,
		Type:                req.Type,
		Status:              req.Status,
		ReleaseType:         req.ReleaseType,
		ReleaseDate:         req.ReleaseDate,
		ReleaseContactEmail: req.ReleaseContactEmail,
	}

	status := http.StatusCreated
	if r.Method == http.MethodPut {
		id, err := pathID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		input.ID = &id
		status = http.StatusOK
	}

	entry, err := s.entries.Save(r.Context(), actor, input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, status, entry)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.entries.Get(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, entry)
}

// handleListEntries lists the actor's entries, optionally filtered with
// ?status=draft|private|scheduled.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	var (
		entries []models.Entry
		err     error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.EntryStatus(raw)
		switch status {
		case models.EntryDraft, models.EntryPrivate, models.EntryScheduled:
			entries, err = s.entries.ListByStatus(r.Context(), actor, status)
		default:
			s.writeError(w, r, common.ValidationError("Invalid status filter"))
			return
		}
	} else {
		entries, err = s.entries.List(r.Context(), actor)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if entries == nil {
		entries = []models.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.entries.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}
