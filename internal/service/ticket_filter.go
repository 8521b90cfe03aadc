package service

import (
	"strings"

	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"gorm.io/gorm"
)

// UnassignedSentinel as an assignedToId filter value means "unassigned"
// (assigned_to_id IS NULL), matching the 0 the UI sends for that choice.
const UnassignedSentinel int64 = 0

// TicketFilter is the caller-supplied filter set for ticket lists. Zero
// values mean "no filter"; AssignedToID distinguishes absent from the
// unassigned sentinel.
type TicketFilter struct {
	Search       string
	Status       string
	Priority     string
	CategoryID   *int64
	AssignedToID *int64
}

// Condition is one conjunctive WHERE clause in gorm's (query, args) form.
type Condition struct {
	Query string
	Args  []any
}

// Conditions translates the filter set plus the actor's visibility scope
// into a conjunctive condition list. User filters and the role scope are
// always AND'ed; a filter can only ever narrow what the role already sees.
func (f TicketFilter) Conditions(actor policy.Actor) []Condition {
	var conds []Condition

	if s := strings.TrimSpace(f.Search); s != "" {
		p := "%" + s + "%"
		conds = append(conds, Condition{
			Query: "(tickets.title ILIKE ? OR tickets.description ILIKE ? OR ('TKT-' || LPAD(tickets.id::text, 6, '0')) ILIKE ?)",
			Args:  []any{p, p, p},
		})
	}
	if f.Status != "" {
		conds = append(conds, Condition{Query: "tickets.status = ?", Args: []any{f.Status}})
	}
	if f.Priority != "" {
		conds = append(conds, Condition{Query: "tickets.priority = ?", Args: []any{f.Priority}})
	}
	if f.CategoryID != nil {
		// A ticket is "in" a category when filed directly under it or
		// under one of its subcategories.
		conds = append(conds, Condition{
			Query: "(tickets.category_id = ? OR tickets.subcategory_id = ?)",
			Args:  []any{*f.CategoryID, *f.CategoryID},
		})
	}
	if f.AssignedToID != nil && policy.AllowAssignedFilter(actor) {
		if *f.AssignedToID == UnassignedSentinel {
			conds = append(conds, Condition{Query: "tickets.assigned_to_id IS NULL"})
		} else {
			conds = append(conds, Condition{Query: "tickets.assigned_to_id = ?", Args: []any{*f.AssignedToID}})
		}
	}

	if q, args := policy.TicketVisibility(actor); q != "" {
		conds = append(conds, Condition{Query: q, Args: args})
	}
	return conds
}

// apply attaches the condition list to a gorm query.
func (f TicketFilter) apply(tx *gorm.DB, actor policy.Actor) *gorm.DB {
	for _, c := range f.Conditions(actor) {
		tx = tx.Where(c.Query, c.Args...)
	}
	return tx
}
