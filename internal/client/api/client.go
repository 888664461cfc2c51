// Package api is the HTTP client for the remote journal API. Every request
// carries a bearer token obtained from a TokenSource immediately before
// dispatch; an unauthenticated caller fails before any network I/O happens.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkwell/internal/client/identity"
	"inkwell/internal/client/models"
)

// TokenSource supplies a fresh token for each request. The session service
// satisfies this, refreshing through the identity provider as needed.
type TokenSource interface {
	GetToken(ctx context.Context) (identity.Token, error)
}

// Client defines the journal API operations.
type Client interface {
	ListEntries(ctx context.Context) ([]models.EntryRecord, error)
	CreateEntry(ctx context.Context, payload models.NewEntryPayload) (models.EntryRecord, error)
	DeleteEntry(ctx context.Context, id string) error
}

// HTTPClient implements Client against a configured base URL.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New builds an HTTPClient. A zero timeout leaves requests bounded only by
// the caller's context.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
	}
}

// call performs one authenticated request and returns the raw response body,
// or nil for empty/204 responses and bodies that are not JSON. Extra headers
// are merged first; the Authorization header derived from the token is always
// applied after them so it cannot be accidentally dropped.
func (c *HTTPClient) call(ctx context.Context, method, path string, body any, extra http.Header) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, ErrBaseURLMissing
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, values := range extra {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if token.IDToken != "" {
		req.Header.Set("Authorization", "Bearer "+token.IDToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(text))}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, nil
	}
	return raw, nil
}

// ListEntries fetches the full collection. The server responds with either a
// bare array or an object holding an "items" array; anything else is
// ErrMalformedResponse.
func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.EntryRecord, error) {
	raw, err := c.call(ctx, http.MethodGet, "/entries", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntryList(raw)
}

func decodeEntryList(raw json.RawMessage) ([]models.EntryRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrMalformedResponse
	}

	if trimmed[0] == '[' {
		var records []models.EntryRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
		}
		return records, nil
	}

	var wrapper struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil || wrapper.Items == nil {
		return nil, ErrMalformedResponse
	}

	var records []models.EntryRecord
	if err := json.Unmarshal(wrapper.Items, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return records, nil
}

// CreateEntry posts a new entry. The created record is unwrapped from an
// {"entry": ...} envelope or taken as the bare response object; when the
// server returns nothing usable the submitted payload is echoed back so the
// caller still receives a record to normalize.
func (c *HTTPClient) CreateEntry(ctx context.Context, payload models.NewEntryPayload) (models.EntryRecord, error) {
	raw, err := c.call(ctx, http.MethodPost, "/entries", payload, nil)
	if err != nil {
		return models.EntryRecord{}, err
	}
	return decodeCreatedEntry(raw, payload), nil
}

func decodeCreatedEntry(raw json.RawMessage, payload models.NewEntryPayload) models.EntryRecord {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.RecordFromPayload(payload)
	}

	var wrapper struct {
		Entry json.RawMessage `json:"entry"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && wrapper.Entry != nil {
		trimmed = bytes.TrimSpace(wrapper.Entry)
	}

	var record models.EntryRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return models.RecordFromPayload(payload)
	}
	return record
}

// DeleteEntry removes the entry with the given id.
func (c *HTTPClient) DeleteEntry(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/entries/"+url.PathEscape(id), nil, nil)
	return err
}
