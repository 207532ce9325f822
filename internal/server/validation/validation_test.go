package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
)

func release(rt models.ReleaseType) *models.ReleaseType { return &rt }

func TestEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "first.last@sub.domain.org", "x+tag@y.io"}
	for _, e := range valid {
		assert.NoError(t, Email(e), e)
	}

	invalid := []string{"", "plain", "no@tld", "spaces in@x.com", "@x.com"}
	for _, e := range invalid {
		err := Email(e)
		require.Error(t, err, e)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Password("secret1"))
	assert.NoError(t, Password("123456"))

	err := Password("12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestEntry(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		entry   models.Entry
		wantErr string
	}{
		{
			name:  "minimal valid entry",
			entry: models.Entry{Content: "hi", Type: models.EntryJournal, Status: models.EntryDraft},
		},
		{
			name:  "empty content is allowed at this layer",
			entry: models.Entry{},
		},
		{
			name:  "content at the limit",
			entry: models.Entry{Content: strings.Repeat("x", MaxContentLength)},
		},
		{
			name:    "content over the limit",
			entry:   models.Entry{Content: strings.Repeat("x", MaxContentLength+1)},
			wantErr: "Content cannot exceed",
		},
		{
			name:    "date release without a date",
			entry:   models.Entry{Status: models.EntryScheduled, ReleaseType: release(models.ReleaseOnDate)},
			wantErr: "Release date is required",
		},
		{
			name:  "date release with a date",
			entry: models.Entry{Status: models.EntryScheduled, ReleaseType: release(models.ReleaseOnDate), ReleaseDate: &now},
		},
		{
			name:  "death release needs no date",
			entry: models.Entry{Status: models.EntryScheduled, ReleaseType: release(models.ReleaseOnDeath)},
		},
		{
			name:    "scheduled without a release type",
			entry:   models.Entry{Content: "x", Status: models.EntryScheduled},
			wantErr: "Release type is required",
		},
		{
			name:    "unknown release type",
			entry:   models.Entry{ReleaseType: release("rapture")},
			wantErr: "Invalid release type",
		},
		{
			name:    "unknown entry type",
			entry:   models.Entry{Type: "diary"},
			wantErr: "Invalid entry type",
		},
		{
			name:    "unknown status",
			entry:   models.Entry{Status: "released"},
			wantErr: "Invalid status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Entry(&tt.entry)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAccountStatus(t *testing.T) {
	t.Parallel()

	assert.NoError(t, AccountStatus(models.AccountApproved))
	assert.NoError(t, AccountStatus(models.AccountRejected))

	// pending is the initial state, never a transition target
	err := AccountStatus(models.AccountPending)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestTheme(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Theme(models.ThemeLight))
	assert.NoError(t, Theme(models.ThemeDark))
	assert.Error(t, Theme("solarized"))
}
