// Package policy decides, for an explicit actor, which tickets, comments and
// users are visible and which mutations are allowed. Handlers never consult
// session state directly; they pass an Actor into every call.
package policy

import (
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

// Actor is the authenticated caller all access decisions are made for.
type Actor struct {
	UserID int64
	Role   model.Role
}

// IsStaff reports whether the actor is an admin or an agent.
func (a Actor) IsStaff() bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleAgent
}

// TicketVisibility returns the SQL condition restricting which ticket rows
// the actor may see, in gorm's (query, args) form. Admins are unrestricted
// and get an empty condition.
func TicketVisibility(a Actor) (string, []any) {
	switch a.Role {
	case model.RoleAdmin:
		return "", nil
	case model.RoleAgent:
		return "(tickets.created_by_id = ? OR tickets.assigned_to_id = ?)", []any{a.UserID, a.UserID}
	default:
		return "tickets.created_by_id = ?", []any{a.UserID}
	}
}

// CanViewTicket is the row-level twin of TicketVisibility.
func CanViewTicket(a Actor, t *model.Ticket) bool {
	switch a.Role {
	case model.RoleAdmin:
		return true
	case model.RoleAgent:
		return t.CreatedByID == a.UserID || (t.AssignedToID != nil && *t.AssignedToID == a.UserID)
	default:
		return t.CreatedByID == a.UserID
	}
}

// CanUpdateTicket reports whether the actor may update the ticket at all.
// Field-level restrictions are applied separately by SanitizeTicketUpdate.
func CanUpdateTicket(a Actor, t *model.Ticket) bool {
	return CanViewTicket(a, t)
}

// CanDeleteTicket enforces the delete rules: admins delete anything, agents
// delete nothing, users delete only their own still-unassigned tickets.
func CanDeleteTicket(a Actor, t *model.Ticket) bool {
	switch a.Role {
	case model.RoleAdmin:
		return true
	case model.RoleAgent:
		return false
	default:
		return t.CreatedByID == a.UserID && t.AssignedToID == nil
	}
}

// CanAssign reports whether the actor may change assignedToId on the ticket:
// admins always, agents only on tickets they created themselves.
func CanAssign(a Actor, t *model.Ticket) bool {
	switch a.Role {
	case model.RoleAdmin:
		return true
	case model.RoleAgent:
		return t.CreatedByID == a.UserID
	default:
		return false
	}
}

// CanWriteStatus reports whether the actor may change a ticket's status.
func CanWriteStatus(a Actor) bool {
	return a.IsStaff()
}

// AllowAssignedFilter reports whether the assignedToId list filter is
// honored for this actor. Non-admin callers have it silently dropped so it
// cannot conflict with their role-scoped conditions.
func AllowAssignedFilter(a Actor) bool {
	return a.Role == model.RoleAdmin
}

// CanComment mirrors ticket visibility: commenting requires seeing the
// ticket.
func CanComment(a Actor, t *model.Ticket) bool {
	return CanViewTicket(a, t)
}

// SeesInternalComments reports whether internal comments are included in
// the actor's reads.
func SeesInternalComments(a Actor) bool {
	return a.IsStaff()
}

// FilterComments drops internal comments for non-staff actors. Filtering,
// not erroring: plain users simply never see the internal thread.
func FilterComments(a Actor, comments []model.Comment) []model.Comment {
	if SeesInternalComments(a) {
		return comments
	}
	out := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if !c.IsInternal {
			out = append(out, c)
		}
	}
	return out
}

// DemoteInternalFlag forces isInternal to false for non-staff authors.
// The flag is silently dropped rather than rejected.
func DemoteInternalFlag(a Actor, isInternal bool) bool {
	return isInternal && a.IsStaff()
}

// UserListRoles returns the roles visible in the actor's user list, or
// selfOnly when the actor may only see their own record. A nil slice with
// selfOnly=false means no restriction.
func UserListRoles(a Actor) (roles []model.Role, selfOnly bool) {
	switch a.Role {
	case model.RoleAdmin:
		return nil, false
	case model.RoleAgent:
		return []model.Role{model.RoleAgent, model.RoleUser}, false
	default:
		return nil, true
	}
}

// CanManageUsers gates user create/update/delete.
func CanManageUsers(a Actor) bool {
	return a.Role == model.RoleAdmin
}

// CanManageCategories gates category create/update/delete.
func CanManageCategories(a Actor) bool {
	return a.Role == model.RoleAdmin
}
