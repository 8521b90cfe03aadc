// Package notify pushes ticket events to an optional notification
// collaborator over HTTP, best-effort: delivery problems are logged and
// never surface to the API caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns the client. With an empty baseURL all calls are no-ops.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// EventPayload is the body of POST /notify/ticket.
type EventPayload struct {
	Event        string `json:"event"`
	TicketID     int64  `json:"ticket_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	CreatedByID  int64  `json:"created_by_id"`
	AssignedToID *int64 `json:"assigned_to_id,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// TicketEvent posts one event synchronously. Prefer TicketEventAsync from
// request handlers.
func (c *Client) TicketEvent(ctx context.Context, event string, t *model.Ticket) {
	if c.baseURL == "" || t == nil {
		return
	}
	payload := EventPayload{
		Event:        event,
		TicketID:     t.ID,
		Title:        t.Title,
		Status:       string(t.Status),
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
		ContactEmail: t.ContactEmail,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify/ticket", bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("notify: status %d for ticket %d", resp.StatusCode, t.ID)
	}
}

// TicketEventAsync delivers the event in its own goroutine so the API
// response is never blocked on the collaborator.
func (c *Client) TicketEventAsync(event string, t *model.Ticket) {
	if c.baseURL == "" || t == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.TicketEvent(ctx, event, t)
	}()
}
