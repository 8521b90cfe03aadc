package exporter

import (
	"testing"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

func TestRow(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -10)
	due := time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC)

	ticket := &model.Ticket{
		ID:          42,
		Title:       "Printer jam",
		Description: "Tray 2",
		Status:      model.TicketStatusOpen,
		Priority:    model.PriorityHigh,
		SupportType: model.SupportRemote,
		CreatedAt:   created,
		UpdatedAt:   created.AddDate(0, 0, 3),
		DueDate:     &due,
		Category:    &model.Category{Name: "Hardware"},
		CreatedBy:   &model.User{Name: "Dana", Email: "dana@example.com", Department: "IT"},
		AssignedTo:  &model.User{Name: "Sam", Email: "sam@example.com"},
	}

	row := Row(ticket, now)
	if len(row) != len(Header) {
		t.Fatalf("row has %d fields, header has %d", len(row), len(Header))
	}

	field := func(name string) string {
		t.Helper()
		for i, h := range Header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("no header %q", name)
		return ""
	}

	if field("Ticket ID") != "42" || field("Title") != "Printer jam" {
		t.Fatalf("identity fields: %v", row)
	}
	if field("Category") != "Hardware" || field("Created By Email") != "dana@example.com" {
		t.Fatalf("relation fields: %v", row)
	}
	if field("Due Date") != "03/25/2025" {
		t.Fatalf("due date = %q", field("Due Date"))
	}
	if field("Days Open") != "10" {
		t.Fatalf("days open = %q, want 10", field("Days Open"))
	}
	// Still open: resolution time is the negated days-open marker.
	if field("Resolution Time") != "-10" {
		t.Fatalf("resolution time = %q, want -10", field("Resolution Time"))
	}
}

func TestRowResolvedTicket(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -10)

	ticket := &model.Ticket{
		ID:        7,
		Status:    model.TicketStatusResolved,
		CreatedAt: created,
		UpdatedAt: created.AddDate(0, 0, 4),
	}

	row := Row(ticket, now)
	var daysOpen, resolution string
	for i, h := range Header {
		switch h {
		case "Days Open":
			daysOpen = row[i]
		case "Resolution Time":
			resolution = row[i]
		}
	}
	if daysOpen != "10" {
		t.Fatalf("days open = %q", daysOpen)
	}
	if resolution != "4" {
		t.Fatalf("resolution time = %q, want 4", resolution)
	}
}

func TestRowMissingRelations(t *testing.T) {
	now := time.Now()
	row := Row(&model.Ticket{ID: 1, CreatedAt: now, UpdatedAt: now}, now)
	for i, h := range Header {
		switch h {
		case "Category", "Created By Name", "Assigned To Email", "Due Date":
			if row[i] != "" {
				t.Fatalf("%s = %q, want empty", h, row[i])
			}
		}
	}
}
