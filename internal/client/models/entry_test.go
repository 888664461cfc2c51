package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withSeams(t *testing.T, ids []string, now time.Time) {
	t.Helper()
	origID, origNow := newID, timeNow
	n := 0
	newID = func() string {
		id := ids[n%len(ids)]
		n++
		return id
	}
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { newID, timeNow = origID, origNow })
}

func strptr(s string) *string { return &s }

func TestNormalize_FillsAllDefaults(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	withSeams(t, []string{"generated-id"}, now)

	entry := Normalize(EntryRecord{})

	require.Equal(t, "generated-id", entry.ID)
	require.Equal(t, DefaultTitle, entry.Title)
	require.Equal(t, "", entry.Content)
	require.Equal(t, DefaultMood, entry.Mood)
	require.Equal(t, []string{}, entry.Tags)
	require.Equal(t, "2025-03-14T09:26:53Z", entry.Date)
	require.Equal(t, "", entry.Prompt)
	require.Empty(t, entry.Attachments)
}

func TestNormalize_PresentFieldsPassThrough(t *testing.T) {
	withSeams(t, []string{"unused"}, time.Now())

	rec := EntryRecord{
		ID:      strptr("1"),
		Title:   strptr("Run"),
		Date:    strptr("2024-01-02T03:04:05Z"),
		Mood:    strptr("energised"),
		Content: strptr("Felt great"),
		Prompt:  strptr("How was your morning?"),
		Tags:    StringList{"morning"},
	}

	entry := Normalize(rec)
	require.Equal(t, "1", entry.ID)
	require.Equal(t, "Run", entry.Title)
	require.Equal(t, "2024-01-02T03:04:05Z", entry.Date)
	require.Equal(t, "energised", entry.Mood)
	require.Equal(t, "Felt great", entry.Content)
	require.Equal(t, "How was your morning?", entry.Prompt)
	require.Equal(t, []string{"morning"}, entry.Tags)
}

func TestNormalize_EmptyStringsAreNotDefaulted(t *testing.T) {
	withSeams(t, []string{"unused"}, time.Now())

	// An explicit empty title is a value, not an absence.
	entry := Normalize(EntryRecord{ID: strptr("1"), Title: strptr(""), Date: strptr("d"), Mood: strptr("calm"), Content: strptr("")})
	require.Equal(t, "", entry.Title)
	require.Equal(t, "d", entry.Date)
}

func TestNormalize_AttachmentsGetIDs(t *testing.T) {
	withSeams(t, []string{"att-1", "att-2"}, time.Now())

	rec := EntryRecord{
		ID:   strptr("1"),
		Date: strptr("d"),
		Attachments: AttachmentList{
			{ThumbnailURL: "https://cdn/thumb.png", Label: "sunrise"},
			{ID: strptr("existing")},
		},
	}

	entry := Normalize(rec)
	require.Len(t, entry.Attachments, 2)
	require.Equal(t, "att-1", entry.Attachments[0].ID)
	require.Equal(t, "https://cdn/thumb.png", entry.Attachments[0].ThumbnailURL)
	require.Equal(t, "sunrise", entry.Attachments[0].Label)
	require.Equal(t, "existing", entry.Attachments[1].ID)
}

func TestNormalize_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	withSeams(t, []string{"id-1", "id-2", "id-3"}, now)

	first := Normalize(EntryRecord{
		Title:       strptr("A day"),
		Tags:        StringList{"x", "y"},
		Attachments: AttachmentList{{Label: "pic"}},
	})

	second := Normalize(RecordFromEntry(first))
	require.Equal(t, first, second)
}

func TestStringList_CollapsesNonSequences(t *testing.T) {
	for _, raw := range []string{`null`, `"oops"`, `42`, `{"a":1}`} {
		var l StringList
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		require.Nil(t, l, raw)
	}

	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &l))
	require.Equal(t, StringList{"a", "b"}, l)
}

func TestEntryRecord_DecodeTolerantLists(t *testing.T) {
	withSeams(t, []string{"gen"}, time.Now())

	var rec EntryRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","title":"A","tags":"nope","attachments":{"bad":true}}`), &rec))

	entry := Normalize(rec)
	require.Equal(t, "1", entry.ID)
	require.Equal(t, "A", entry.Title)
	require.Equal(t, []string{}, entry.Tags)
	require.Empty(t, entry.Attachments)
	require.Equal(t, DefaultMood, entry.Mood)
	require.Equal(t, "", entry.Content)
}

func TestRecordFromPayload_OmitsServerAssignedFields(t *testing.T) {
	rec := RecordFromPayload(NewEntryPayload{
		Title:   "Run",
		Content: "Felt great",
		Mood:    "energised",
		Tags:    []string{"morning"},
	})
	require.Nil(t, rec.ID)
	require.Nil(t, rec.Date)
	require.Equal(t, "Run", *rec.Title)
	require.Equal(t, "energised", *rec.Mood)
}
