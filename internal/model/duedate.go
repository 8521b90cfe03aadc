package model

import (
	"regexp"
	"strings"
	"time"
)

// Layouts accepted for due dates, in the order they are tried. Sheets
// exported from the portal use the "Jan 2, 2006 3:04 pm" form.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006 3:04 pm",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006 3:04 pm",
	"January 2, 2006",
}

// usDateRE matches MM/DD/YYYY (or MM-DD-YYYY) fallback dates.
var usDateRE = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)

// ParseDueDate parses a due date from flexible textual input. The
// "<date> @ <time>" form is rewritten to a space-joined form before the
// layout list is tried; a MM/DD/YYYY regexp is the last resort. Unparseable
// values yield nil rather than an error.
func ParseDueDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if parts := strings.SplitN(s, "@", 2); len(parts) == 2 {
		s = strings.TrimSpace(parts[0]) + " " + strings.TrimSpace(parts[1])
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if m := usDateRE.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("1/2/2006", m[1]+"/"+m[2]+"/"+m[3]); err == nil {
			return &t
		}
	}
	return nil
}
