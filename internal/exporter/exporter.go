// Package exporter flattens role-scoped tickets into the CSV layout the
// portal's spreadsheets use, including the Days Open and Resolution Time
// columns.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

// Header is the column layout of an export, matched by the importer's
// human-readable header mapping.
var Header = []string{
	"Ticket ID", "Title", "Description", "Status", "Priority", "Support Type",
	"Category", "Created By Name", "Created By Email", "Created By Department",
	"Assigned To Name", "Assigned To Email",
	"Contact Email", "Contact Name", "Contact Phone", "Contact Department",
	"Created Date", "Updated Date", "Due Date", "Days Open", "Resolution Time",
}

const dateLayout = "01/02/2006"

type Exporter struct {
	tickets *service.TicketService
}

func New(tickets *service.TicketService) *Exporter {
	return &Exporter{tickets: tickets}
}

// Write streams the actor's full (unpaginated, role-scoped) ticket set as
// CSV. Returns the number of data rows written.
func (e *Exporter) Write(ctx context.Context, actor policy.Actor, w io.Writer) (int, error) {
	list, err := e.tickets.List(ctx, actor, service.TicketFilter{}, nil)
	if err != nil {
		return 0, err
	}
	return e.writeRows(w, list.Tickets, time.Now())
}

func (e *Exporter) writeRows(w io.Writer, tickets []model.Ticket, now time.Time) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, err
	}
	for i := range tickets {
		if err := cw.Write(Row(&tickets[i], now)); err != nil {
			return i, err
		}
	}
	cw.Flush()
	return len(tickets), cw.Error()
}

// Row flattens one ticket. Days Open counts days since creation; Resolution
// Time is the creation-to-last-update day count for resolved/closed tickets
// and the negated Days Open for everything still open.
func Row(t *model.Ticket, now time.Time) []string {
	daysOpen := int(now.Sub(t.CreatedAt).Hours() / 24)

	var resolutionTime int
	if t.Status == model.TicketStatusResolved || t.Status == model.TicketStatusClosed {
		resolutionTime = int(t.UpdatedAt.Sub(t.CreatedAt).Hours() / 24)
	} else {
		resolutionTime = -daysOpen
	}

	var categoryName, createdByName, createdByEmail, createdByDept string
	if t.Category != nil {
		categoryName = t.Category.Name
	}
	if t.CreatedBy != nil {
		createdByName = t.CreatedBy.Name
		createdByEmail = t.CreatedBy.Email
		createdByDept = t.CreatedBy.Department
	}
	var assignedToName, assignedToEmail string
	if t.AssignedTo != nil {
		assignedToName = t.AssignedTo.Name
		assignedToEmail = t.AssignedTo.Email
	}
	var dueDate string
	if t.DueDate != nil {
		dueDate = t.DueDate.Format(dateLayout)
	}

	return []string{
		fmt.Sprintf("%d", t.ID),
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		string(t.SupportType),
		categoryName,
		createdByName,
		createdByEmail,
		createdByDept,
		assignedToName,
		assignedToEmail,
		t.ContactEmail,
		t.ContactName,
		t.ContactPhone,
		t.ContactDepartment,
		t.CreatedAt.Format(dateLayout),
		t.UpdatedAt.Format(dateLayout),
		dueDate,
		strconv.Itoa(daysOpen),
		strconv.Itoa(resolutionTime),
	}
}
