package pagination

import "testing"

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		page       Page
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"middle page", Page{Number: 2, Limit: 10}, 47, 5, true, true},
		{"first page", Page{Number: 1, Limit: 10}, 47, 5, true, false},
		{"last partial page", Page{Number: 5, Limit: 10}, 47, 5, false, true},
		{"exact fit", Page{Number: 2, Limit: 10}, 20, 2, false, true},
		{"empty set", Page{Number: 1, Limit: 10}, 0, 0, false, false},
		{"past the end", Page{Number: 9, Limit: 10}, 47, 5, false, true},
		{"single row", Page{Number: 1, Limit: 1}, 1, 1, false, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.page, tt.total)
			if m.TotalPages != tt.totalPages {
				t.Fatalf("TotalPages = %d, want %d", m.TotalPages, tt.totalPages)
			}
			if m.HasNextPage != tt.hasNext {
				t.Fatalf("HasNextPage = %v, want %v", m.HasNextPage, tt.hasNext)
			}
			if m.HasPreviousPage != tt.hasPrev {
				t.Fatalf("HasPreviousPage = %v, want %v", m.HasPreviousPage, tt.hasPrev)
			}
			if m.TotalCount != tt.total || m.CurrentPage != tt.page.Number || m.Limit != tt.page.Limit {
				t.Fatalf("echo fields wrong: %+v", m)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Limit: 10}, 0},
		{Page{Number: 2, Limit: 10}, 10},
		{Page{Number: 3, Limit: 25}, 50},
	}
	for _, tt := range cases {
		if got := tt.page.Offset(); got != tt.want {
			t.Fatalf("Offset(%+v) = %d, want %d", tt.page, got, tt.want)
		}
	}
}
