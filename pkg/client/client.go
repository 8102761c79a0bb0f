// Package client is the Go consumer of the donation tracker API: a typed
// HTTP client plus LiveFeed, a reconciling cache fed by the per-event SSE
// change stream. Types here mirror the wire JSON rather than the server's
// persistence models so the package stays usable outside this module.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Donation mirrors the server's donation row.
type Donation struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	DonorName    string    `json:"donor_name"`
	DonorPhone   string    `json:"donor_phone"`
	Amount       float64   `json:"amount"`
	Note         string    `json:"note"`
	DonationType string    `json:"donation_type"`
	IsAnonymous  bool      `json:"is_anonymous"`
	ProcessedBy  string    `json:"processed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// Envelope mirrors the server's envelope row.
type Envelope struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	RouteName   string    `json:"route_name"`
	EnvelopeNo  string    `json:"envelope_no"`
	DonorName   string    `json:"donor_name"`
	DonorPhone  string    `json:"donor_phone"`
	Amount      float64   `json:"amount"`
	PaymentType string    `json:"payment_type"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	ProcessedBy string    `json:"processed_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Income mirrors the server's income row.
type Income struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	ReceivedDate time.Time `json:"received_date"`
	ReceiptNo    string    `json:"receipt_no"`
	ProcessedBy  string    `json:"processed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventSummary mirrors the server's aggregate snapshot.
type EventSummary struct {
	EventID             string  `json:"event_id"`
	EventName           string  `json:"event_name"`
	TargetAmount        float64 `json:"target_amount"`
	IsActive            bool    `json:"is_active"`
	TotalDonated        float64 `json:"total_donated"`
	TotalDonors         int64   `json:"total_donors"`
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	TotalEnvelopes      int64   `json:"total_envelopes"`
	EnvelopesReceived   int64   `json:"envelopes_received"`
	TotalEnvelopeAmount float64 `json:"total_envelope_amount"`
	PercentReached      float64 `json:"percent_reached"`
}

// Change is one notification from the event stream. Row stays raw until the
// consumer knows which table it belongs to.
type Change struct {
	Table   string          `json:"table"`
	Op      string          `json:"op"`
	EventID string          `json:"event_id"`
	Row     json.RawMessage `json:"row"`
	At      time.Time       `json:"at"`
}

// APIError carries the HTTP status plus the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to the tracker API. Zero value is not usable; construct with
// New. Token is optional and only needed for write endpoints.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a bearer token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var data struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &data); err != nil {
		return err
	}
	c.Token = data.Token
	return nil
}

// RecentDonations returns the newest donations for an event, newest first.
func (c *Client) RecentDonations(ctx context.Context, eventID string, limit int) ([]Donation, error) {
	q := url.Values{"event_id": {eventID}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Donation
	if err := c.do(ctx, http.MethodGet, "/api/donations/recent", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Envelopes returns every envelope of an event, route then number order.
func (c *Client) Envelopes(ctx context.Context, eventID string) ([]Envelope, error) {
	q := url.Values{"event_id": {eventID}}
	var out []Envelope
	if err := c.do(ctx, http.MethodGet, "/api/envelopes", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Income returns the income ledger of an event, newest first.
func (c *Client) Income(ctx context.Context, eventID string) ([]Income, error) {
	q := url.Values{"event_id": {eventID}}
	var out []Income
	if err := c.do(ctx, http.MethodGet, "/api/income", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventSummary returns the aggregate snapshot for an event.
func (c *Client) EventSummary(ctx context.Context, eventID string) (*EventSummary, error) {
	var out EventSummary
	if err := c.do(ctx, http.MethodGet, "/api/events/"+eventID+"/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDonation records a donation. Requires a bearer token.
func (c *Client) CreateDonation(ctx context.Context, d Donation) (*Donation, error) {
	var out Donation
	if err := c.do(ctx, http.MethodPost, "/api/donations", nil, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StreamChanges subscribes to the SSE change feed for one event. The returned
// channel closes when the stream ends or ctx is cancelled; ping comments are
// skipped.
func (c *Client) StreamChanges(ctx context.Context, eventID string) (<-chan Change, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/events/"+eventID+"/stream", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// a dedicated client without the timeout, streams are long-lived
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Message: "stream rejected"}
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var change Change
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &change); err != nil {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
