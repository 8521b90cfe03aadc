package model

import (
	"fmt"
	"strings"
)

// TicketCode renders the display code for a ticket id, e.g. TKT-000042.
func TicketCode(id int64) string {
	return fmt.Sprintf("TKT-%06d", id)
}

// supportTypeAliases folds the textual variants seen in exported sheets
// into the canonical value.
var supportTypeAliases = map[string]SupportType{
	"remote":        SupportRemote,
	"telephonic":    SupportTelephonic,
	"onsite_visit":  SupportOnsiteVisit,
	"onsite visit":  SupportOnsiteVisit,
	"on-site visit": SupportOnsiteVisit,
	"other":         SupportOther,
}

// NormalizeStatus lowercases and trims the input and checks it against the
// allowed statuses. Unknown values fall back to "open"; ok reports whether
// the input was already valid.
func NormalizeStatus(raw string) (TicketStatus, bool) {
	s := TicketStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return s, true
	}
	return TicketStatusOpen, false
}

// NormalizePriority is the priority counterpart of NormalizeStatus, with a
// "medium" fallback.
func NormalizePriority(raw string) (TicketPriority, bool) {
	p := TicketPriority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return PriorityMedium, false
}

// NormalizeSupportType folds textual aliases into the canonical support
// type, with a "remote" fallback.
func NormalizeSupportType(raw string) (SupportType, bool) {
	if st, ok := supportTypeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return st, true
	}
	return SupportRemote, false
}

// ValidRole reports whether raw names one of the three account roles.
func ValidRole(raw string) bool {
	switch Role(raw) {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}
