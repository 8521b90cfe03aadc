package model

import "testing"

func TestTicketCode(t *testing.T) {
	cases := []struct {
		id   int64
		want string
	}{
		{1, "TKT-000001"},
		{42, "TKT-000042"},
		{123456, "TKT-123456"},
		{1234567, "TKT-1234567"},
	}
	for _, tt := range cases {
		if got := TicketCode(tt.id); got != tt.want {
			t.Fatalf("TicketCode(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want TicketStatus
		ok   bool
	}{
		{"open", TicketStatusOpen, true},
		{"In-Progress", TicketStatusInProgress, true},
		{"  RESOLVED ", TicketStatusResolved, true},
		{"closed", TicketStatusClosed, true},
		{"Bogus", TicketStatusOpen, false},
		{"", TicketStatusOpen, false},
	}
	for _, tt := range cases {
		got, ok := NormalizeStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("NormalizeStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		in   string
		want TicketPriority
		ok   bool
	}{
		{"low", PriorityLow, true},
		{"HIGH", PriorityHigh, true},
		{"urgent", PriorityMedium, false},
		{"", PriorityMedium, false},
	}
	for _, tt := range cases {
		got, ok := NormalizePriority(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("NormalizePriority(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeSupportType(t *testing.T) {
	cases := []struct {
		in   string
		want SupportType
		ok   bool
	}{
		{"remote", SupportRemote, true},
		{"Onsite Visit", SupportOnsiteVisit, true},
		{"on-site visit", SupportOnsiteVisit, true},
		{"onsite_visit", SupportOnsiteVisit, true},
		{"telephonic", SupportTelephonic, true},
		{"carrier pigeon", SupportRemote, false},
	}
	for _, tt := range cases {
		got, ok := NormalizeSupportType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("NormalizeSupportType(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{"admin", "agent", "user"} {
		if !ValidRole(r) {
			t.Fatalf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"Admin", "superuser", ""} {
		if ValidRole(r) {
			t.Fatalf("ValidRole(%q) = true", r)
		}
	}
}
