package calendar

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

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// restBackend talks to a calendar HTTP service exposing
// GET /events?date=... and POST /events.
type restBackend struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewRESTBackend creates a Backend against the given calendar service.
func NewRESTBackend(baseURL, token string) Backend {
	return &restBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type restEvent struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type listResponse struct {
	Events []restEvent `json:"events"`
}

type createResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id"`
	Link    string `json:"link"`
	Error   string `json:"error"`
}

func (b *restBackend) ListEventsForDate(ctx context.Context, date string) ([]domain.BusyEvent, error) {
	endpoint := fmt.Sprintf("%s/events?date=%s", b.baseURL, url.QueryEscape(date))
	data, err := b.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing events for %s: %w", date, err)
	}

	var resp listResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding event list: %w", err)
	}

	var busy []domain.BusyEvent
	for _, ev := range resp.Events {
		start, err := timetext.ClockToMinutes(ev.StartTime)
		if err != nil {
			// All-day entries carry no clock; they do not block a window.
			continue
		}
		end, err := timetext.ClockToMinutes(ev.EndTime)
		if err != nil {
			continue
		}
		iv, err := domain.NewTimeInterval(start, end)
		if err != nil {
			continue
		}
		busy = append(busy, domain.BusyEvent{Title: ev.Title, Interval: iv})
	}
	return busy, nil
}

func (b *restBackend) CreateEvent(ctx context.Context, req contract.EventRequest) (contract.CreatedEvent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("marshaling event: %w", err)
	}

	data, err := b.do(ctx, http.MethodPost, b.baseURL+"/events", body)
	if err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("creating event %q: %w", req.Title, err)
	}

	var resp createResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("decoding create response: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "backend reported failure"
		}
		return contract.CreatedEvent{}, fmt.Errorf("%w: %s", ErrCreateFailed, msg)
	}

	return contract.CreatedEvent{
		EventID: resp.EventID,
		Link:    resp.Link,
		Title:   req.Title,
		Date:    req.Date,
		Start:   req.StartTime,
		End:     req.EndTime,
	}, nil
}

func (b *restBackend) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("calendar api returned status %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
