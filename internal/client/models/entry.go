// Package models defines the journal entry types exchanged with the remote
// API and the normalization applied to records crossing that boundary.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Test seams for deterministic normalization.
var (
	newID   = uuid.NewString
	timeNow = time.Now
)

// DefaultMood is applied to records that carry no mood value.
const DefaultMood = "reflective"

// DefaultTitle is applied to records that carry no title.
const DefaultTitle = "Untitled entry"

// JournalAttachment is a reference to media attached to an entry. Only
// metadata travels through this client; the media itself lives elsewhere.
type JournalAttachment struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Label        string `json:"label,omitempty"`
}

// JournalEntry is a fully-populated journal record. Within the local list the
// ID is unique; ordering is server-determined except for locally created
// entries, which are prepended.
type JournalEntry struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Date        string              `json:"date"`
	Mood        string              `json:"mood"`
	Tags        []string            `json:"tags"`
	Content     string              `json:"content"`
	Prompt      string              `json:"prompt,omitempty"`
	Attachments []JournalAttachment `json:"attachments"`
}

// NewAttachment is attachment metadata submitted with a new entry; the server
// assigns the ID.
type NewAttachment struct {
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Label        string `json:"label,omitempty"`
}

// NewEntryPayload is the body of a create request. ID and Date are
// server-assigned.
type NewEntryPayload struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Mood        string          `json:"mood"`
	Tags        []string        `json:"tags"`
	Prompt      string          `json:"prompt,omitempty"`
	Attachments []NewAttachment `json:"attachments,omitempty"`
}

// StringList decodes a JSON array of strings, collapsing anything that is not
// a proper sequence (null, scalar, object) to an empty list instead of
// failing the surrounding document.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		*l = nil
		return nil
	}
	*l = values
	return nil
}

// AttachmentRecord is an attachment as received from the server; the ID may
// be absent.
type AttachmentRecord struct {
	ID           *string `json:"id"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Label        string  `json:"label"`
}

// AttachmentList decodes a JSON array of attachment records with the same
// tolerance as StringList.
type AttachmentList []AttachmentRecord

func (l *AttachmentList) UnmarshalJSON(b []byte) error {
	var values []AttachmentRecord
	if err := json.Unmarshal(b, &values); err != nil {
		*l = nil
		return nil
	}
	*l = values
	return nil
}

// EntryRecord is a partial, untrusted journal record as received from the
// server. Pointer fields distinguish absent/null values from empty strings.
type EntryRecord struct {
	ID          *string        `json:"id"`
	Title       *string        `json:"title"`
	Date        *string        `json:"date"`
	Mood        *string        `json:"mood"`
	Tags        StringList     `json:"tags"`
	Content     *string        `json:"content"`
	Prompt      *string        `json:"prompt"`
	Attachments AttachmentList `json:"attachments"`
}

// RecordFromPayload converts a submitted payload into a record, used when the
// server echoes nothing usable back for a create. ID and Date stay absent so
// normalization fills them.
func RecordFromPayload(p NewEntryPayload) EntryRecord {
	rec := EntryRecord{
		Title:   &p.Title,
		Mood:    &p.Mood,
		Content: &p.Content,
		Tags:    StringList(p.Tags),
	}
	if p.Prompt != "" {
		prompt := p.Prompt
		rec.Prompt = &prompt
	}
	for _, a := range p.Attachments {
		rec.Attachments = append(rec.Attachments, AttachmentRecord{
			ThumbnailURL: a.ThumbnailURL,
			Label:        a.Label,
		})
	}
	return rec
}

// RecordFromEntry converts a fully-populated entry back into a record.
// Normalizing the result yields an entry equal to the original.
func RecordFromEntry(e JournalEntry) EntryRecord {
	rec := EntryRecord{
		ID:      &e.ID,
		Title:   &e.Title,
		Date:    &e.Date,
		Mood:    &e.Mood,
		Content: &e.Content,
		Tags:    StringList(e.Tags),
	}
	if e.Prompt != "" {
		prompt := e.Prompt
		rec.Prompt = &prompt
	}
	for _, a := range e.Attachments {
		id := a.ID
		rec.Attachments = append(rec.Attachments, AttachmentRecord{
			ID:           &id,
			ThumbnailURL: a.ThumbnailURL,
			Label:        a.Label,
		})
	}
	return rec
}

// Normalize turns a partial record into a fully-populated JournalEntry:
// a fresh id when absent, "Untitled entry" title, empty content, the default
// mood, empty tag/attachment lists, the current timestamp in RFC 3339, and
// fresh ids for attachments missing one. It is the sole defense against
// malformed or partial API responses, and is idempotent: fields already
// present pass through unchanged.
func Normalize(rec EntryRecord) JournalEntry {
	entry := JournalEntry{
		ID:      stringOr(rec.ID, ""),
		Title:   stringOr(rec.Title, DefaultTitle),
		Date:    stringOr(rec.Date, ""),
		Mood:    stringOr(rec.Mood, DefaultMood),
		Content: stringOr(rec.Content, ""),
		Prompt:  stringOr(rec.Prompt, ""),
		Tags:    []string(rec.Tags),
	}
	if rec.ID == nil {
		entry.ID = newID()
	}
	if rec.Date == nil {
		entry.Date = timeNow().UTC().Format(time.RFC3339)
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	entry.Attachments = make([]JournalAttachment, 0, len(rec.Attachments))
	for _, a := range rec.Attachments {
		att := JournalAttachment{
			ID:           stringOr(a.ID, ""),
			ThumbnailURL: a.ThumbnailURL,
			Label:        a.Label,
		}
		if a.ID == nil {
			att.ID = newID()
		}
		entry.Attachments = append(entry.Attachments, att)
	}

	return entry
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
