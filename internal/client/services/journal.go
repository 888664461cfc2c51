package services

import (
	"context"
	"errors"
	"sync"

	"inkwell/internal/client/api"
	"inkwell/internal/client/identity"
	"inkwell/internal/client/models"
	"inkwell/internal/logging"
)

// ErrCreateInFlight is returned when a create is attempted while a previous
// one has not resolved yet, instead of issuing a duplicate request.
var ErrCreateInFlight = errors.New("entry creation already in progress")

// Status reflects the last completed or in-flight collection operation; it
// is store-wide, not per item.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// JournalService mirrors the server-side entry collection in memory.
//
// Entries are never mutated in place: fetches replace the list wholesale,
// creates prepend the server's normalized representation, deletes remove an
// entry only after the server confirms. Failures leave the list untouched.
type JournalService interface {
	// Entries returns a snapshot of the current list, newest first.
	Entries() []models.JournalEntry

	// Status returns the store-wide status.
	Status() Status

	// FetchAll replaces the list from the server. With no authenticated
	// user it resets to an empty idle list. Failures are absorbed: status
	// becomes error and the previous list is retained.
	FetchAll(ctx context.Context)

	// AddEntry creates an entry and prepends the normalized result,
	// returning it so the caller can highlight it.
	AddEntry(ctx context.Context, payload models.NewEntryPayload) (models.JournalEntry, error)

	// DeleteEntry removes the entry with the given id after the server
	// confirms.
	DeleteEntry(ctx context.Context, id string) error
}

type journalService struct {
	api     api.Client
	session SessionService
	log     logging.Logger

	mu             sync.Mutex
	entries        []models.JournalEntry
	status         Status
	createInFlight bool
}

func NewJournalService(apiClient api.Client, sess SessionService, log logging.Logger) JournalService {
	return &journalService{
		api:     apiClient,
		session: sess,
		log:     log,
		status:  StatusIdle,
	}
}

func (s *journalService) Entries() []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.JournalEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

func (s *journalService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *journalService) setStatus(v Status) {
	s.mu.Lock()
	s.status = v
	s.mu.Unlock()
}

func (s *journalService) FetchAll(ctx context.Context) {
	if s.session.CurrentUser() == nil {
		// Unauthenticated is a valid quiescent state, not a failure.
		s.mu.Lock()
		s.entries = nil
		s.status = StatusIdle
		s.mu.Unlock()
		return
	}

	s.setStatus(StatusLoading)

	records, err := s.api.ListEntries(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load journal entries", "error", err)
		s.setStatus(StatusError)
		return
	}

	entries := make([]models.JournalEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, models.Normalize(rec))
	}

	s.mu.Lock()
	s.entries = entries
	s.status = StatusIdle
	s.mu.Unlock()
}

func (s *journalService) AddEntry(ctx context.Context, payload models.NewEntryPayload) (models.JournalEntry, error) {
	if s.session.CurrentUser() == nil {
		return models.JournalEntry{}, identity.ErrNotAuthenticated
	}

	s.mu.Lock()
	if s.createInFlight {
		s.mu.Unlock()
		return models.JournalEntry{}, ErrCreateInFlight
	}
	s.createInFlight = true
	s.status = StatusLoading
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.createInFlight = false
		s.mu.Unlock()
	}()

	record, err := s.api.CreateEntry(ctx, payload)
	if err != nil {
		s.log.Error(ctx, "failed to create journal entry", "error", err)
		s.setStatus(StatusError)
		return models.JournalEntry{}, err
	}

	created := models.Normalize(record)

	s.mu.Lock()
	s.entries = append([]models.JournalEntry{created}, s.entries...)
	s.status = StatusIdle
	s.mu.Unlock()

	return created, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, id string) error {
	if s.session.CurrentUser() == nil {
		return identity.ErrNotAuthenticated
	}

	s.setStatus(StatusLoading)

	// No optimistic removal: the entry leaves the list only on confirmed
	// deletion.
	if err := s.api.DeleteEntry(ctx, id); err != nil {
		s.log.Error(ctx, "failed to delete journal entry", "error", err, "id", id)
		s.setStatus(StatusError)
		return err
	}

	s.mu.Lock()
	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.status = StatusIdle
	s.mu.Unlock()

	return nil
}
