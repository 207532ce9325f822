package models

import (
	"time"

	"github.com/google/uuid"
)

type EntryType string

const (
	EntryJournal EntryType = "journal"
	EntryMessage EntryType = "message"
	EntryWishes  EntryType = "wishes"
)

type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntryPrivate   EntryStatus = "private"
	EntryScheduled EntryStatus = "scheduled"
)

type ReleaseType string

const (
	ReleaseOnDate  ReleaseType = "date"
	ReleaseOnDeath ReleaseType = "death"
)

// Entry is a private or scheduled-release written record. Ownership is
// permanent: an entry is only ever reachable through queries scoped by its
// owner's id. "released" is never stored; it is derived from the release
// condition (see Released).
type Entry struct {
	ID                  uuid.UUID    `json:"id"`
	OwnerID             uuid.UUID    `json:"owner_id"`
	Content             string       `json:"content"`
	Type                EntryType    `json:"type"`
	Status              EntryStatus  `json:"status"`
	ReleaseType         *ReleaseType `json:"release_type,omitempty"`
	ReleaseDate         *time.Time   `json:"release_date,omitempty"`
	ReleaseContactEmail *string      `json:"release_contact_email,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// Released reports whether the entry's release condition has fired by now.
// Only date releases are derivable here: a death release depends on an
// external confirmation event the core never observes, so it always reports
// false from this method.
func (e *Entry) Released(now time.Time) bool {
	if e.Status != EntryScheduled || e.ReleaseType == nil {
		return false
	}
	return *e.ReleaseType == ReleaseOnDate && e.ReleaseDate != nil && !now.Before(*e.ReleaseDate)
}
