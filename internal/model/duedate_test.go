package model

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means nil
	}{
		{"2025-03-14", "2025-03-14"},
		{"2025-03-14T10:30:00Z", "2025-03-14"},
		{"Mar 14, 2025 2:30 pm", "2025-03-14"},
		{"March 14, 2025", "2025-03-14"},
		{"Mar 14, 2025 @ 2:30 pm", "2025-03-14"},
		{"03/14/2025", "2025-03-14"},
		{"3/4/2025", "2025-03-04"},
		{"3-4-2025", "2025-03-04"},
		{"", ""},
		{"not a date", ""},
		{"14/03/2025", ""}, // month 14 is invalid in the MM/DD form
	}
	for _, tt := range cases {
		got := ParseDueDate(tt.in)
		if tt.want == "" {
			if got != nil {
				t.Fatalf("ParseDueDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("ParseDueDate(%q) = nil, want %s", tt.in, tt.want)
		}
		if d := got.Format("2006-01-02"); d != tt.want {
			t.Fatalf("ParseDueDate(%q) = %s, want %s", tt.in, d, tt.want)
		}
	}
}

func TestParseDueDateKeepsTime(t *testing.T) {
	got := ParseDueDate("Mar 14, 2025 2:30 pm")
	if got == nil {
		t.Fatal("want a parse")
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("time = %s, want 14:30", got.Format(time.Kitchen))
	}
}
