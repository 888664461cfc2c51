package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"inkwell/internal/client/models"
	"inkwell/internal/client/services"
)

// List prints the cached entry list, newest first. It does not hit the
// server; use Refresh for that.
func (a *App) List(ctx context.Context) error {
	entries := a.journal.Entries()
	if a.journal.Status() == services.StatusError {
		printlnFn("Warning: the last sync failed; this list may be stale.")
	}
	if len(entries) == 0 {
		printlnFn("No entries yet. Type 'add' to write one.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  [%s]  %s", e.ID, e.Date, e.Mood, e.Title)
		if len(e.Tags) > 0 {
			line += "  (" + strings.Join(e.Tags, ", ") + ")"
		}
		printlnFn(line)
	}
	return nil
}

// Show prompts for an entry id and prints the full entry from the cached
// list.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to show", os.Stdout)
	if err != nil {
		return err
	}

	for _, e := range a.journal.Entries() {
		if e.ID != id {
			continue
		}
		printlnFn(e.Title)
		printlnFn("Date:", e.Date)
		printlnFn("Mood:", e.Mood)
		if len(e.Tags) > 0 {
			printlnFn("Tags:", strings.Join(e.Tags, ", "))
		}
		if e.Prompt != "" {
			printlnFn("Prompt:", e.Prompt)
		}
		printlnFn("")
		printlnFn(e.Content)
		for _, att := range e.Attachments {
			printlnFn("Attachment:", att.ID, att.Label)
		}
		return nil
	}

	printlnFn("No entry with id", id)
	return nil
}

// Add collects a new entry interactively and submits it. The server decides
// the id and date; the created entry is echoed back with its final values.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	mood, err := getSimpleText(a.reader, "Enter mood (empty for the default)", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := getCommaList(a.reader, "Enter tags, comma-separated (optional)", os.Stdout)
	if err != nil {
		return err
	}
	prompt, err := getSimpleText(a.reader, "Enter writing prompt (optional)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter entry text (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	payload := models.NewEntryPayload{
		Title:   title,
		Content: content,
		Mood:    mood,
		Tags:    tags,
		Prompt:  prompt,
	}

	created, err := a.journal.AddEntry(ctx, payload)
	if err != nil {
		if errors.Is(err, services.ErrCreateInFlight) {
			printlnFn("Another entry is still being saved; try again in a moment.")
		} else {
			printlnFn("Saving failed:", err.Error())
		}
		return err
	}

	printlnFn("Saved entry", created.ID, "dated", created.Date)
	return nil
}

// Delete prompts for an entry id and removes it. The entry disappears from
// the local list only after the server confirms.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.journal.DeleteEntry(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Deleted", id)
	return nil
}

// Refresh re-fetches the entry list from the server.
func (a *App) Refresh(ctx context.Context) error {
	a.journal.FetchAll(ctx)
	if a.journal.Status() == services.StatusError {
		printlnFn("Refresh failed; keeping the previous list.")
		return nil
	}
	printlnFn(fmt.Sprintf("Fetched %d entries.", len(a.journal.Entries())))
	return nil
}

// Whoami prints the signed-in user's profile.
func (a *App) Whoami(ctx context.Context) error {
	user := a.sessions.CurrentUser()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn("Username:", user.Username)
	if user.Email != "" {
		printlnFn("Email:", user.Email)
	}

	names := make([]string, 0, len(user.Attributes))
	for name := range user.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printlnFn(fmt.Sprintf("%s: %s", name, user.Attributes[name]))
	}
	return nil
}
