package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/client/api"
	"github.com/everkeep/everkeep/internal/server/models"
)

const releaseDateLayout = "2006-01-02"

// promptEntry walks the user through the entry fields and assembles the
// request payload. Release details are only asked for when the status is
// scheduled; the server validates the combination again.
func (a *App) promptEntry(ctx context.Context) (*api.EntryPayload, error) {
	entryType, err := GetChoice(a.reader, "Entry type", []string{"journal", "message", "wishes"}, "journal", os.Stdout)
	if err != nil {
		return nil, err
	}

	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return nil, err
	}

	status, err := GetChoice(a.reader, "Status", []string{"draft", "private", "scheduled"}, "draft", os.Stdout)
	if err != nil {
		return nil, err
	}

	payload := &api.EntryPayload{
		Content: content,
		Type:    models.EntryType(entryType),
		Status:  models.EntryStatus(status),
	}

	if payload.Status != models.EntryScheduled {
		return payload, nil
	}

	release, err := GetChoice(a.reader, "Release on", []string{"date", "death"}, "date", os.Stdout)
	if err != nil {
		return nil, err
	}
	releaseType := models.ReleaseType(release)
	payload.ReleaseType = &releaseType

	switch releaseType {
	case models.ReleaseOnDate:
		raw, err := getSimpleText(a.reader, "Release date (YYYY-MM-DD)", os.Stdout)
		if err != nil {
			return nil, err
		}
		date, err := time.Parse(releaseDateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		payload.ReleaseDate = &date
	case models.ReleaseOnDeath:
		contact, err := getSimpleText(a.reader, "Release contact email", os.Stdout)
		if err != nil {
			return nil, err
		}
		payload.ReleaseContactEmail = &contact
	}

	return payload, nil
}

// Write creates a new entry interactively.
func (a *App) Write(ctx context.Context) error {
	payload, err := a.promptEntry(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry, err := a.api.CreateEntry(ctx, *payload)
	if err != nil {
		printlnFn("Save failed:", err.Error())
		return err
	}

	printlnFn("Saved entry", entry.ID.String())
	return nil
}

// Edit re-prompts every field for an existing entry and submits the full
// replacement. There is no partial patch on the wire.
func (a *App) Edit(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		printlnFn("Invalid id:", id)
		return err
	}

	existing, err := a.api.GetEntry(ctx, entryID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Editing %s entry from %s", existing.Type, existing.CreatedAt.Format(releaseDateLayout)))

	payload, err := a.promptEntry(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry, err := a.api.UpdateEntry(ctx, entryID, *payload)
	if err != nil {
		printlnFn("Save failed:", err.Error())
		return err
	}

	printlnFn("Updated entry", entry.ID.String())
	return nil
}

func (a *App) listEntries(ctx context.Context, status models.EntryStatus) error {
	entries, err := a.api.ListEntries(ctx, status)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(entries) == 0 {
		printlnFn("No entries")
		return nil
	}

	for _, e := range entries {
		printlnFn(formatEntryLine(&e))
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	return a.listEntries(ctx, "")
}

func (a *App) Drafts(ctx context.Context) error {
	return a.listEntries(ctx, models.EntryDraft)
}

func (a *App) Scheduled(ctx context.Context) error {
	return a.listEntries(ctx, models.EntryScheduled)
}

// Show prints one entry in full.
func (a *App) Show(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		printlnFn("Invalid id:", id)
		return err
	}

	entry, err := a.api.GetEntry(ctx, entryID)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(formatEntryLine(entry))
	if entry.ReleaseType != nil {
		printlnFn("Release:", formatRelease(entry))
	}
	printlnFn("")
	printlnFn(entry.Content)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		printlnFn("Invalid id:", id)
		return err
	}

	if err := a.api.DeleteEntry(ctx, entryID); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Deleted")
	return nil
}

func formatEntryLine(e *models.Entry) string {
	return fmt.Sprintf("%s  %-8s %-9s %s", e.ID, e.Type, e.Status, e.UpdatedAt.Format(releaseDateLayout))
}

func formatRelease(e *models.Entry) string {
	switch {
	case e.ReleaseType == nil:
		return ""
	case *e.ReleaseType == models.ReleaseOnDate && e.ReleaseDate != nil:
		return "on " + e.ReleaseDate.Format(releaseDateLayout)
	case *e.ReleaseType == models.ReleaseOnDeath && e.ReleaseContactEmail != nil:
		return "upon death, to " + *e.ReleaseContactEmail
	default:
		return string(*e.ReleaseType)
	}
}
