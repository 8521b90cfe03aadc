package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/rs/zerolog"
)

// fakeStore is an in-memory Store with auto-assigned ids, mirroring what
// the database would do.
type fakeStore struct {
	categories []model.Category
	users      []model.User
	tickets    []model.Ticket
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 100}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Categories(ctx context.Context) ([]model.Category, error) {
	return append([]model.Category(nil), s.categories...), nil
}

func (s *fakeStore) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	for i := range s.categories {
		if strings.EqualFold(s.categories[i].Name, name) {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, errs.ErrCategoryNotFound
}

func (s *fakeStore) CreateCategory(ctx context.Context, c *model.Category) error {
	c.ID = s.id()
	s.categories = append(s.categories, *c)
	return nil
}

func (s *fakeStore) Users(ctx context.Context) ([]model.User, error) {
	return append([]model.User(nil), s.users...), nil
}

func (s *fakeStore) UserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Username, username) || strings.EqualFold(s.users[i].Email, email) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (s *fakeStore) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = s.id()
	s.users = append(s.users, *u)
	return nil
}

func (s *fakeStore) CreateTicket(ctx context.Context, t *model.Ticket) error {
	t.ID = s.id()
	s.tickets = append(s.tickets, *t)
	return nil
}

func run(t *testing.T, store *fakeStore, csv string) *Result {
	t.Helper()
	im := New(store, zerolog.Nop())
	result, err := im.Run(context.Background(), policy.Actor{UserID: 1, Role: model.RoleAdmin}, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func TestRunCreatesTickets(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})
	store.users = append(store.users, model.User{ID: 5, Name: "Dana Ops", Email: "dana@example.com", Role: model.RoleAgent})

	csv := "Title,Description,Category,Status,Priority,Created By Email,Assigned To Email\n" +
		"Printer jam,Tray 2 keeps jamming,Hardware,open,high,dana@example.com,dana@example.com\n" +
		"Monitor flicker,Flickers on wake,Hardware,in-progress,low,dana@example.com,\n"

	result := run(t, store, csv)
	if result.Processed != 2 || result.Created != 2 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	if len(store.tickets) != 2 {
		t.Fatalf("stored %d tickets, want 2", len(store.tickets))
	}

	first := store.tickets[0]
	if first.CategoryID != 10 || first.CreatedByID != 5 {
		t.Fatalf("first ticket refs: %+v", first)
	}
	if first.AssignedToID == nil || *first.AssignedToID != 5 {
		t.Fatalf("first ticket assignee: %v", first.AssignedToID)
	}
	second := store.tickets[1]
	if second.AssignedToID != nil {
		t.Fatal("empty assignee must stay unassigned")
	}
	if result.Message != "Import completed. 2 tickets created out of 2 processed." {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestRunRowErrorsDoNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "Title,Category\n" +
		",Hardware\n" +
		"Valid row,Hardware\n"

	result := run(t, store, csv)
	if result.Processed != 2 || result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Row 1") || !strings.Contains(result.Errors[0], "title is required") {
		t.Fatalf("errors = %v", result.Errors)
	}
	if len(store.tickets) != 1 {
		t.Fatalf("stored %d tickets, want 1", len(store.tickets))
	}
}

// Two rows naming the same unseen category must create it once and reuse it.
func TestRunCreatesCategoryOnce(t *testing.T) {
	store := newFakeStore()

	csv := "Title,Category\n" +
		"First,Networking\n" +
		"Second,networking\n"

	result := run(t, store, csv)
	if result.Created != 2 {
		t.Fatalf("result = %+v", result)
	}
	if len(store.categories) != 1 {
		t.Fatalf("created %d categories, want 1", len(store.categories))
	}
	if store.tickets[0].CategoryID != store.tickets[1].CategoryID {
		t.Fatal("both rows must reference the same created category")
	}
}

func TestRunCreatesPlaceholderUsers(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "Title,Category,Created By Name,Assigned To Name\n" +
		"Broken dock,Hardware,Jordan Lee,Sam Field\n"

	result := run(t, store, csv)
	if result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(store.users) != 2 {
		t.Fatalf("created %d users, want 2", len(store.users))
	}

	var creator, assignee *model.User
	for i := range store.users {
		switch store.users[i].Name {
		case "Jordan Lee":
			creator = &store.users[i]
		case "Sam Field":
			assignee = &store.users[i]
		}
	}
	if creator == nil || assignee == nil {
		t.Fatalf("users = %+v", store.users)
	}
	if creator.Role != model.RoleUser {
		t.Fatalf("creator role = %s, want user", creator.Role)
	}
	if assignee.Role != model.RoleAgent {
		t.Fatalf("assignee role = %s, want agent", assignee.Role)
	}
	if creator.Username != "jordanlee" || !strings.HasSuffix(creator.Email, "@imported.local") {
		t.Fatalf("creator account: %+v", creator)
	}
	if creator.Password == "" {
		t.Fatal("placeholder account must carry a hashed password")
	}
}

func TestRunEnumFallbacks(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "Title,Category,Status,Priority,Support Type\n" +
		"Odd values,Hardware,Bogus,Critical,Carrier Pigeon\n"

	result := run(t, store, csv)
	if result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
	tk := store.tickets[0]
	if tk.Status != model.TicketStatusOpen {
		t.Fatalf("status = %s, want open fallback", tk.Status)
	}
	if tk.Priority != model.PriorityMedium {
		t.Fatalf("priority = %s, want medium fallback", tk.Priority)
	}
	if tk.SupportType != model.SupportRemote {
		t.Fatalf("support type = %s, want remote fallback", tk.SupportType)
	}
}

func TestRunCreatorFallsBackToActor(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "Title,Category\n" +
		"No creator column,Hardware\n"

	run(t, store, csv)
	if len(store.tickets) != 1 || store.tickets[0].CreatedByID != 1 {
		t.Fatalf("tickets = %+v, want creator 1 (the actor)", store.tickets)
	}
}

func TestRunSnakeCaseHeaders(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "title,description,category_id,status\n" +
		"From machine export,desc,10,resolved\n"

	result := run(t, store, csv)
	if result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
	if store.tickets[0].Status != model.TicketStatusResolved {
		t.Fatalf("status = %s", store.tickets[0].Status)
	}
}

func TestRunDueDateParsing(t *testing.T) {
	store := newFakeStore()
	store.categories = append(store.categories, model.Category{ID: 10, Name: "Hardware"})

	csv := "Title,Category,Due Date\n" +
		"Dated,Hardware,\"Mar 14, 2025 @ 2:30 pm\"\n" +
		"Undated,Hardware,whenever\n"

	result := run(t, store, csv)
	if result.Created != 2 {
		t.Fatalf("result = %+v", result)
	}
	if store.tickets[0].DueDate == nil {
		t.Fatal("parseable due date missing")
	}
	if store.tickets[1].DueDate != nil {
		t.Fatal("unparseable due date must be nil, not an error")
	}
}

func TestRunRejectsHeaderlessInput(t *testing.T) {
	im := New(newFakeStore(), zerolog.Nop())
	_, err := im.Run(context.Background(), policy.Actor{UserID: 1, Role: model.RoleAdmin}, strings.NewReader(""))
	if err == nil {
		t.Fatal("want an error for empty input")
	}
}

func TestDeriveUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jordan Lee", "jordanlee"},
		{"dana@example.com", "danaexamplecom"},
		{"!!!", ""},
	}
	for _, tt := range cases {
		if got := deriveUsername(tt.in); got != tt.want {
			t.Fatalf("deriveUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
