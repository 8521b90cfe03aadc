package service

import (
	"strings"
	"testing"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
)

func idp(v int64) *int64 { return &v }

func TestConditionsEmptyFilterAdmin(t *testing.T) {
	conds := TicketFilter{}.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 0 {
		t.Fatalf("admin with no filters got %d conditions, want 0", len(conds))
	}
}

// Every filter and the role scope must land as separate AND'ed conditions:
// a filter can only narrow the role's visible set, never widen it.
func TestConditionsConjunction(t *testing.T) {
	f := TicketFilter{
		Search:     "printer",
		Status:     "open",
		Priority:   "high",
		CategoryID: idp(3),
	}
	actor := policy.Actor{UserID: 7, Role: model.RoleAgent}
	conds := f.Conditions(actor)
	if len(conds) != 5 {
		t.Fatalf("got %d conditions, want 5 (4 filters + visibility)", len(conds))
	}

	last := conds[len(conds)-1]
	if !strings.Contains(last.Query, "created_by_id") || !strings.Contains(last.Query, "assigned_to_id") {
		t.Fatalf("visibility scope missing or not last: %q", last.Query)
	}
}

func TestConditionsSearchMatchesDisplayCode(t *testing.T) {
	conds := TicketFilter{Search: "TKT-000042"}.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 1 {
		t.Fatalf("got %d conditions, want 1", len(conds))
	}
	q := conds[0].Query
	if !strings.Contains(q, "LPAD(tickets.id::text, 6, '0')") {
		t.Fatalf("search does not cover display code: %q", q)
	}
	if len(conds[0].Args) != 3 {
		t.Fatalf("search args = %d, want 3", len(conds[0].Args))
	}
	if conds[0].Args[0] != "%TKT-000042%" {
		t.Fatalf("search pattern = %v", conds[0].Args[0])
	}
}

func TestConditionsCategoryCoversSubcategory(t *testing.T) {
	conds := TicketFilter{CategoryID: idp(5)}.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 1 {
		t.Fatalf("got %d conditions, want 1", len(conds))
	}
	if !strings.Contains(conds[0].Query, "subcategory_id") {
		t.Fatalf("category filter ignores subcategories: %q", conds[0].Query)
	}
}

func TestConditionsAssignedFilterAdminOnly(t *testing.T) {
	f := TicketFilter{AssignedToID: idp(9)}

	conds := f.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 1 || conds[0].Query != "tickets.assigned_to_id = ?" {
		t.Fatalf("admin assigned filter wrong: %+v", conds)
	}

	// For non-admins the filter is dropped; only the role scope remains.
	conds = f.Conditions(policy.Actor{UserID: 2, Role: model.RoleAgent})
	for _, c := range conds {
		if c.Query == "tickets.assigned_to_id = ?" {
			t.Fatal("agent must not get the assigned filter")
		}
	}
	conds = f.Conditions(policy.Actor{UserID: 2, Role: model.RoleUser})
	if len(conds) != 1 || conds[0].Query != "tickets.created_by_id = ?" {
		t.Fatalf("user conditions = %+v, want visibility scope only", conds)
	}
}

func TestConditionsUnassignedSentinel(t *testing.T) {
	f := TicketFilter{AssignedToID: idp(UnassignedSentinel)}
	conds := f.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 1 {
		t.Fatalf("got %d conditions, want 1", len(conds))
	}
	if conds[0].Query != "tickets.assigned_to_id IS NULL" || len(conds[0].Args) != 0 {
		t.Fatalf("sentinel condition = %+v", conds[0])
	}
}

func TestConditionsTrimsSearch(t *testing.T) {
	conds := TicketFilter{Search: "   "}.Conditions(policy.Actor{Role: model.RoleAdmin})
	if len(conds) != 0 {
		t.Fatalf("whitespace search produced %d conditions", len(conds))
	}
}
