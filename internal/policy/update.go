package policy

import (
	"encoding/json"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

// OptionalID distinguishes "field absent" from "field explicitly null" in
// update payloads, which matters for clearing an assignment.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// TicketUpdate is the typed update payload. Unknown JSON keys are dropped
// at the binding boundary; nil pointers mean "leave unchanged".
type TicketUpdate struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Status            *string    `json:"status"`
	Priority          *string    `json:"priority"`
	SupportType       *string    `json:"supportType"`
	ContactEmail      *string    `json:"contactEmail"`
	ContactName       *string    `json:"contactName"`
	ContactPhone      *string    `json:"contactPhone"`
	ContactDepartment *string    `json:"contactDepartment"`
	CategoryID        *int64     `json:"categoryId"`
	SubcategoryID     OptionalID `json:"subcategoryId"`
	AssignedToID      OptionalID `json:"assignedToId"`
	DueDate           *time.Time `json:"dueDate"`
}

// SanitizeTicketUpdate converts the payload into a column change set,
// dropping the fields the actor's role may not touch. Restricted fields
// are removed silently, not rejected: a plain user sending a status change
// gets everything else applied. createdById is never writable.
func SanitizeTicketUpdate(a Actor, t *model.Ticket, upd TicketUpdate) map[string]any {
	changes := make(map[string]any)

	if upd.Title != nil {
		changes["title"] = *upd.Title
	}
	if upd.Description != nil {
		changes["description"] = *upd.Description
	}
	if upd.Priority != nil {
		if p, ok := model.NormalizePriority(*upd.Priority); ok {
			changes["priority"] = p
		}
	}
	if upd.SupportType != nil {
		if st, ok := model.NormalizeSupportType(*upd.SupportType); ok {
			changes["support_type"] = st
		}
	}
	if upd.ContactEmail != nil {
		changes["contact_email"] = *upd.ContactEmail
	}
	if upd.ContactName != nil {
		changes["contact_name"] = *upd.ContactName
	}
	if upd.ContactPhone != nil {
		changes["contact_phone"] = *upd.ContactPhone
	}
	if upd.ContactDepartment != nil {
		changes["contact_department"] = *upd.ContactDepartment
	}
	if upd.CategoryID != nil {
		changes["category_id"] = *upd.CategoryID
	}
	if upd.SubcategoryID.Set {
		changes["subcategory_id"] = upd.SubcategoryID.Value
	}
	if upd.DueDate != nil {
		changes["due_date"] = *upd.DueDate
	}

	if upd.Status != nil && CanWriteStatus(a) {
		if s, ok := model.NormalizeStatus(*upd.Status); ok {
			changes["status"] = s
		}
	}
	if upd.AssignedToID.Set && CanAssign(a, t) {
		changes["assigned_to_id"] = upd.AssignedToID.Value
	}

	return changes
}
