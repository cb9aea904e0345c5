// Package journal fetches daily journal entries from a Notion-compatible
// HTTP API and flattens their block content for extraction.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// ErrEntryNotFound indicates no journal entry exists for the requested date.
var ErrEntryNotFound = errors.New("journal entry not found")

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
	pageSize       = 100
)

// Store reads journal entries from a Notion database keyed by a Date
// property.
type Store struct {
	baseURL    string
	token      string
	databaseID string
	http       *http.Client
}

// NewStore creates a Store for the given integration token and database.
// The database ID may carry dashes; they are stripped.
func NewStore(token, databaseID string) *Store {
	return &Store{
		baseURL:    defaultBaseURL,
		token:      token,
		databaseID: strings.ReplaceAll(databaseID, "-", ""),
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the store at a different API host. Used in tests.
func (s *Store) WithBaseURL(base string) *Store {
	s.baseURL = strings.TrimRight(base, "/")
	return s
}

type queryFilter struct {
	Property string `json:"property"`
	Date     struct {
		Equals string `json:"equals"`
	} `json:"date"`
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type pageResult struct {
	ID             string `json:"id"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
}

type queryResponse struct {
	Results []pageResult `json:"results"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type richTextContainer struct {
	RichText []richText `json:"rich_text"`
}

type blockEnvelope struct {
	Type           string `json:"type"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
}

type blocksResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor"`
}

// EntryForDate fetches the journal entry whose Date property equals the
// given ISO date ("2025-07-20") along with all of its content blocks.
// Returns ErrEntryNotFound when the database has no entry for that date.
func (s *Store) EntryForDate(ctx context.Context, date string) (domain.JournalEntry, error) {
	page, err := s.queryByDate(ctx, date)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	blocks, err := s.pageBlocks(ctx, page.ID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("fetching blocks for page %s: %w", page.ID, err)
	}

	return domain.JournalEntry{
		Date:       date,
		PageID:     page.ID,
		Created:    page.CreatedTime,
		LastEdited: page.LastEditedTime,
		Blocks:     blocks,
	}, nil
}

func (s *Store) queryByDate(ctx context.Context, date string) (pageResult, error) {
	var req queryRequest
	req.Filter.Property = "Date"
	req.Filter.Date.Equals = date

	body, err := json.Marshal(req)
	if err != nil {
		return pageResult{}, fmt.Errorf("marshaling query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", s.baseURL, s.databaseID)
	data, err := s.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return pageResult{}, fmt.Errorf("querying journal database: %w", err)
	}

	var resp queryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return pageResult{}, fmt.Errorf("decoding query response: %w", err)
	}
	if len(resp.Results) == 0 {
		return pageResult{}, fmt.Errorf("%w: no entry for %s", ErrEntryNotFound, date)
	}
	return resp.Results[0], nil
}

// pageBlocks walks the block-children endpoint, following pagination until
// has_more is false.
func (s *Store) pageBlocks(ctx context.Context, pageID string) ([]domain.JournalBlock, error) {
	var blocks []domain.JournalBlock
	cursor := ""

	for {
		endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?page_size=%d", s.baseURL, pageID, pageSize)
		if cursor != "" {
			endpoint += "&start_cursor=" + url.QueryEscape(cursor)
		}

		data, err := s.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		var resp blocksResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decoding blocks response: %w", err)
		}

		for _, raw := range resp.Results {
			block, ok := decodeBlock(raw)
			if ok {
				blocks = append(blocks, block)
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

// decodeBlock flattens a block's rich text into plain text. Blocks without
// a rich_text payload (dividers, images) are skipped.
func decodeBlock(raw json.RawMessage) (domain.JournalBlock, bool) {
	var env blockEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		return domain.JournalBlock{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.JournalBlock{}, false
	}
	payload, ok := fields[env.Type]
	if !ok {
		return domain.JournalBlock{}, false
	}

	var container richTextContainer
	if err := json.Unmarshal(payload, &container); err != nil || len(container.RichText) == 0 {
		return domain.JournalBlock{}, false
	}

	var text strings.Builder
	for _, rt := range container.RichText {
		text.WriteString(rt.PlainText)
	}
	if strings.TrimSpace(text.String()) == "" {
		return domain.JournalBlock{}, false
	}

	return domain.JournalBlock{
		Type:       env.Type,
		Text:       text.String(),
		Created:    env.CreatedTime,
		LastEdited: env.LastEditedTime,
	}, true
}

func (s *Store) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("journal api returned status %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
