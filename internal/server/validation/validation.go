// Package validation holds the pure, stateless field rules for accounts and
// entries. Every check fails with a common.ValidationError carrying a
// human-readable reason. Entry rules run identically on create and update;
// there is no reduced "patch" validation.
package validation

import (
	"fmt"
	"regexp"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
)

// MaxContentLength bounds entry content.
const MaxContentLength = 10000

// MinPasswordLength is the only password rule; no upper bound is enforced.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks the simple local@domain.tld shape.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return common.ValidationError("Invalid email format")
	}
	return nil
}

func Password(password string) error {
	if len(password) < MinPasswordLength {
		return common.ValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

// Entry runs the full entry rule set. Zero-valued enum fields count as "not
// provided"; the service applies defaults before persisting.
func Entry(e *models.Entry) error {
	if len(e.Content) > MaxContentLength {
		return common.ValidationError(fmt.Sprintf("Content cannot exceed %d characters", MaxContentLength))
	}

	// a scheduled entry must carry an unambiguous release condition
	if e.Status == models.EntryScheduled && e.ReleaseType == nil {
		return common.ValidationError("Release type is required when status is \"scheduled\"")
	}

	if e.ReleaseType != nil && *e.ReleaseType == models.ReleaseOnDate && e.ReleaseDate == nil {
		return common.ValidationError(`Release date is required when release type is "date"`)
	}

	if e.ReleaseType != nil {
		switch *e.ReleaseType {
		case models.ReleaseOnDate, models.ReleaseOnDeath:
		default:
			return common.ValidationError("Invalid release type")
		}
	}

	if e.Type != "" {
		switch e.Type {
		case models.EntryJournal, models.EntryMessage, models.EntryWishes:
		default:
			return common.ValidationError("Invalid entry type")
		}
	}

	if e.Status != "" {
		switch e.Status {
		case models.EntryDraft, models.EntryPrivate, models.EntryScheduled:
		default:
			return common.ValidationError("Invalid status")
		}
	}

	return nil
}

// AccountStatus checks an admin-supplied account status transition target.
func AccountStatus(s models.AccountStatus) error {
	switch s {
	case models.AccountApproved, models.AccountRejected:
		return nil
	default:
		return common.ValidationError("Invalid account status")
	}
}

// Theme checks a profile theme preference when provided.
func Theme(t models.Theme) error {
	switch t {
	case models.ThemeLight, models.ThemeDark:
		return nil
	default:
		return common.ValidationError("Invalid theme preference")
	}
}
