package policy

import (
	"testing"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

func ptr(v int64) *int64 { return &v }

func TestTicketVisibility(t *testing.T) {
	cases := []struct {
		name     string
		actor    Actor
		wantQ    string
		wantArgs int
	}{
		{"admin unrestricted", Actor{UserID: 1, Role: model.RoleAdmin}, "", 0},
		{"agent creator-or-assignee", Actor{UserID: 7, Role: model.RoleAgent}, "(tickets.created_by_id = ? OR tickets.assigned_to_id = ?)", 2},
		{"user creator only", Actor{UserID: 9, Role: model.RoleUser}, "tickets.created_by_id = ?", 1},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			q, args := TicketVisibility(tt.actor)
			if q != tt.wantQ {
				t.Fatalf("query = %q, want %q", q, tt.wantQ)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("args = %d, want %d", len(args), tt.wantArgs)
			}
			for _, a := range args {
				if a != tt.actor.UserID {
					t.Fatalf("arg = %v, want actor id %d", a, tt.actor.UserID)
				}
			}
		})
	}
}

func TestCanViewTicket(t *testing.T) {
	owned := &model.Ticket{ID: 1, CreatedByID: 5}
	assigned := &model.Ticket{ID: 2, CreatedByID: 1, AssignedToID: ptr(5)}
	foreign := &model.Ticket{ID: 3, CreatedByID: 1, AssignedToID: ptr(2)}

	cases := []struct {
		name   string
		actor  Actor
		ticket *model.Ticket
		want   bool
	}{
		{"admin sees foreign", Actor{UserID: 99, Role: model.RoleAdmin}, foreign, true},
		{"agent sees own", Actor{UserID: 5, Role: model.RoleAgent}, owned, true},
		{"agent sees assigned", Actor{UserID: 5, Role: model.RoleAgent}, assigned, true},
		{"agent blocked from foreign", Actor{UserID: 5, Role: model.RoleAgent}, foreign, false},
		{"user sees own", Actor{UserID: 5, Role: model.RoleUser}, owned, true},
		{"user blocked from assigned-to-them-but-not-created", Actor{UserID: 5, Role: model.RoleUser}, assigned, false},
		{"user blocked from foreign", Actor{UserID: 5, Role: model.RoleUser}, foreign, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewTicket(tt.actor, tt.ticket); got != tt.want {
				t.Fatalf("CanViewTicket = %v, want %v", got, tt.want)
			}
		})
	}
}

// Row-level CanViewTicket must agree with the set-level TicketVisibility
// condition for every role, so single-ticket reads can never leak rows the
// list would hide.
func TestVisibilityAgreement(t *testing.T) {
	tickets := []*model.Ticket{
		{ID: 1, CreatedByID: 5},
		{ID: 2, CreatedByID: 1, AssignedToID: ptr(5)},
		{ID: 3, CreatedByID: 1, AssignedToID: ptr(2)},
		{ID: 4, CreatedByID: 5, AssignedToID: ptr(5)},
	}
	actors := []Actor{
		{UserID: 5, Role: model.RoleAdmin},
		{UserID: 5, Role: model.RoleAgent},
		{UserID: 5, Role: model.RoleUser},
	}
	for _, a := range actors {
		q, _ := TicketVisibility(a)
		for _, tk := range tickets {
			visible := CanViewTicket(a, tk)
			var setVisible bool
			switch q {
			case "":
				setVisible = true
			case "(tickets.created_by_id = ? OR tickets.assigned_to_id = ?)":
				setVisible = tk.CreatedByID == a.UserID || (tk.AssignedToID != nil && *tk.AssignedToID == a.UserID)
			case "tickets.created_by_id = ?":
				setVisible = tk.CreatedByID == a.UserID
			default:
				t.Fatalf("unexpected visibility condition %q", q)
			}
			if visible != setVisible {
				t.Fatalf("role %s ticket %d: row-level %v, set-level %v", a.Role, tk.ID, visible, setVisible)
			}
		}
	}
}

func TestCanDeleteTicket(t *testing.T) {
	cases := []struct {
		name   string
		actor  Actor
		ticket *model.Ticket
		want   bool
	}{
		{"admin deletes anything", Actor{UserID: 1, Role: model.RoleAdmin}, &model.Ticket{CreatedByID: 2, AssignedToID: ptr(3)}, true},
		{"agent never deletes", Actor{UserID: 5, Role: model.RoleAgent}, &model.Ticket{CreatedByID: 5}, false},
		{"user deletes own unassigned", Actor{UserID: 5, Role: model.RoleUser}, &model.Ticket{CreatedByID: 5}, true},
		{"user blocked once assigned", Actor{UserID: 5, Role: model.RoleUser}, &model.Ticket{CreatedByID: 5, AssignedToID: ptr(7)}, false},
		{"user blocked from foreign", Actor{UserID: 5, Role: model.RoleUser}, &model.Ticket{CreatedByID: 6}, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDeleteTicket(tt.actor, tt.ticket); got != tt.want {
				t.Fatalf("CanDeleteTicket = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAssign(t *testing.T) {
	own := &model.Ticket{CreatedByID: 5}
	foreign := &model.Ticket{CreatedByID: 1}

	if !CanAssign(Actor{UserID: 9, Role: model.RoleAdmin}, foreign) {
		t.Fatal("admin must assign on any ticket")
	}
	if !CanAssign(Actor{UserID: 5, Role: model.RoleAgent}, own) {
		t.Fatal("agent must assign on own ticket")
	}
	if CanAssign(Actor{UserID: 5, Role: model.RoleAgent}, foreign) {
		t.Fatal("agent must not assign on foreign ticket")
	}
	if CanAssign(Actor{UserID: 5, Role: model.RoleUser}, own) {
		t.Fatal("user must never assign")
	}
}

func TestFilterComments(t *testing.T) {
	comments := []model.Comment{
		{ID: 1, Content: "public"},
		{ID: 2, Content: "internal note", IsInternal: true},
		{ID: 3, Content: "another public"},
	}

	got := FilterComments(Actor{Role: model.RoleUser}, comments)
	if len(got) != 2 {
		t.Fatalf("user sees %d comments, want 2", len(got))
	}
	for _, c := range got {
		if c.IsInternal {
			t.Fatalf("internal comment %d leaked to user", c.ID)
		}
	}

	for _, role := range []model.Role{model.RoleAdmin, model.RoleAgent} {
		if got := FilterComments(Actor{Role: role}, comments); len(got) != 3 {
			t.Fatalf("%s sees %d comments, want 3", role, len(got))
		}
	}
}

func TestDemoteInternalFlag(t *testing.T) {
	if DemoteInternalFlag(Actor{Role: model.RoleUser}, true) {
		t.Fatal("user's isInternal must be demoted")
	}
	if !DemoteInternalFlag(Actor{Role: model.RoleAgent}, true) {
		t.Fatal("agent's isInternal must survive")
	}
	if DemoteInternalFlag(Actor{Role: model.RoleAdmin}, false) {
		t.Fatal("false must stay false")
	}
}

func TestUserListRoles(t *testing.T) {
	roles, selfOnly := UserListRoles(Actor{Role: model.RoleAdmin})
	if roles != nil || selfOnly {
		t.Fatalf("admin scope = (%v, %v), want unrestricted", roles, selfOnly)
	}

	roles, selfOnly = UserListRoles(Actor{Role: model.RoleAgent})
	if selfOnly || len(roles) != 2 {
		t.Fatalf("agent scope = (%v, %v), want agents+users", roles, selfOnly)
	}
	for _, r := range roles {
		if r == model.RoleAdmin {
			t.Fatal("agent must not see admins")
		}
	}

	roles, selfOnly = UserListRoles(Actor{Role: model.RoleUser})
	if !selfOnly || roles != nil {
		t.Fatalf("user scope = (%v, %v), want self only", roles, selfOnly)
	}
}

func TestAllowAssignedFilter(t *testing.T) {
	if !AllowAssignedFilter(Actor{Role: model.RoleAdmin}) {
		t.Fatal("admin must use the assigned filter")
	}
	if AllowAssignedFilter(Actor{Role: model.RoleAgent}) || AllowAssignedFilter(Actor{Role: model.RoleUser}) {
		t.Fatal("assigned filter must be admin only")
	}
}
