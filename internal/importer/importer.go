// Package importer reconciles CSV ticket batches against the database:
// textual category and user references are resolved to ids, missing
// referents are created on the fly, and each row fails on its own without
// aborting the batch.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/rs/zerolog"
)

// Result is the batch summary. Processed counts every attempted row;
// Created counts successful inserts; Errors carries one row-numbered
// message per failed row.
type Result struct {
	Message   string   `json:"message"`
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Errors    []string `json:"errors"`
}

type Importer struct {
	store Store
	log   zerolog.Logger
}

func New(store Store, log zerolog.Logger) *Importer {
	return &Importer{store: store, log: log.With().Str("component", "importer").Logger()}
}

// batch is the in-memory resolution state for one import run. Categories
// and users created mid-batch are appended so later rows reuse them instead
// of racing a second create.
type batch struct {
	actor      policy.Actor
	categories []model.Category
	users      []model.User
}

// row is one CSV record keyed by header. Both the human-readable export
// headers ("Created By Email") and the snake_case machine headers
// (created_by_id) are accepted.
type row map[string]string

func (r row) field(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Run streams the CSV and imports it row by row on behalf of the actor.
// The error return covers only batch-level failures (unreadable input,
// roster fetch); row-level failures land in Result.Errors.
func (im *Importer) Run(ctx context.Context, actor policy.Actor, input io.Reader) (*Result, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", errs.ErrValidation)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	categories, err := im.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := im.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	b := &batch{actor: actor, categories: categories, users: users}

	result := &Result{Errors: []string{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Processed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: malformed CSV record", result.Processed))
			continue
		}
		result.Processed++

		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = record[i]
			}
		}

		if err := im.importRow(ctx, b, r); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.Processed, err))
			continue
		}
		result.Created++
	}

	result.Message = fmt.Sprintf("Import completed. %d tickets created out of %d processed.", result.Created, result.Processed)
	im.log.Info().
		Int("processed", result.Processed).
		Int("created", result.Created).
		Int("failed", len(result.Errors)).
		Msg("import finished")
	return result, nil
}

// importRow runs one record through the stages: resolve_category →
// resolve_creator → resolve_assignee → parse_due_date → normalize_enums →
// validate → insert. Any error fails only this row.
func (im *Importer) importRow(ctx context.Context, b *batch, r row) error {
	categoryID, err := im.resolveCategory(ctx, b, r.field("Category", "category_id"))
	if err != nil {
		return err
	}

	createdByID := im.resolveCreator(ctx, b, r.field("Created By Email", "Created By Name", "created_by_id"))
	assignedToID := im.resolveAssignee(ctx, b, r.field("Assigned To Email", "Assigned To Name", "assigned_to_id"))

	dueDate := model.ParseDueDate(r.field("Due Date", "due_date"))

	status, _ := model.NormalizeStatus(r.field("Status", "status"))
	priority, _ := model.NormalizePriority(r.field("Priority", "priority"))
	supportType, _ := model.NormalizeSupportType(r.field("Support Type", "support_type"))

	title := r.field("Title", "title")
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if categoryID == 0 {
		return fmt.Errorf("category could not be resolved")
	}
	if createdByID == 0 {
		return fmt.Errorf("creator could not be resolved")
	}
	description := r.field("Description", "description")
	if description == "" {
		description = "No description provided"
	}

	t := &model.Ticket{
		Title:             title,
		Description:       description,
		Status:            status,
		Priority:          priority,
		SupportType:       supportType,
		ContactEmail:      r.field("Contact Email", "contact_email"),
		ContactName:       r.field("Contact Name", "contact_name"),
		ContactPhone:      r.field("Contact Phone", "contact_phone"),
		ContactDepartment: r.field("Contact Department", "contact_department"),
		CategoryID:        categoryID,
		CreatedByID:       createdByID,
		AssignedToID:      assignedToID,
		DueDate:           dueDate,
	}
	if err := im.store.CreateTicket(ctx, t); err != nil {
		return fmt.Errorf("insert failed: %v", err)
	}
	return nil
}

// resolveCategory matches by case-insensitive name or numeric id against
// the batch cache, re-checks the database by name before creating, and
// caches whatever it resolves so repeated unseen names in one batch yield
// a single category.
func (im *Importer) resolveCategory(ctx context.Context, b *batch, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	id, _ := strconv.ParseInt(value, 10, 64)
	for i := range b.categories {
		c := &b.categories[i]
		if strings.EqualFold(c.Name, value) || (id != 0 && c.ID == id) {
			return c.ID, nil
		}
	}

	// Race-safe re-check: another batch (or an earlier request) may have
	// created the category since the roster was fetched.
	if existing, err := im.store.CategoryByName(ctx, value); err == nil {
		b.categories = append(b.categories, *existing)
		return existing.ID, nil
	} else if !errors.Is(err, errs.ErrCategoryNotFound) {
		return 0, fmt.Errorf("category lookup %q: %v", value, err)
	}

	c := &model.Category{Name: value, ParentID: nil}
	if err := im.store.CreateCategory(ctx, c); err != nil {
		return 0, fmt.Errorf("failed to create category %q: %v", value, err)
	}
	im.log.Info().Str("category", value).Msg("created category during import")
	b.categories = append(b.categories, *c)
	return c.ID, nil
}

// resolveCreator resolves the creator reference, creating a placeholder
// "user"-role account on miss. Any failure falls back to the importing
// actor's own id; a creator resolution problem never fails the row.
func (im *Importer) resolveCreator(ctx context.Context, b *batch, value string) int64 {
	if value == "" {
		return b.actor.UserID
	}
	if u := im.resolveUser(ctx, b, value, model.RoleUser); u != nil {
		return u.ID
	}
	return b.actor.UserID
}

// resolveAssignee resolves the assignee reference, creating a placeholder
// "agent"-role account on miss (an assignee is presumed staff). Failure
// leaves the ticket unassigned.
func (im *Importer) resolveAssignee(ctx context.Context, b *batch, value string) *int64 {
	if value == "" {
		return nil
	}
	if u := im.resolveUser(ctx, b, value, model.RoleAgent); u != nil {
		return &u.ID
	}
	return nil
}

// resolveUser matches by case-insensitive email, name or numeric id against
// the roster; on miss it derives a username, re-checks the database, and
// creates a placeholder account with a random hashed password.
func (im *Importer) resolveUser(ctx context.Context, b *batch, value string, role model.Role) *model.User {
	id, _ := strconv.ParseInt(value, 10, 64)
	for i := range b.users {
		u := &b.users[i]
		if strings.EqualFold(u.Email, value) || strings.EqualFold(u.Name, value) || (id != 0 && u.ID == id) {
			return u
		}
	}

	username := deriveUsername(value)
	if username == "" {
		return nil
	}
	email := username + "@imported.local"

	if existing, err := im.store.UserByUsernameOrEmail(ctx, username, email); err == nil {
		b.users = append(b.users, *existing)
		return &b.users[len(b.users)-1]
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		im.log.Warn().Err(err).Str("value", value).Msg("user lookup failed during import")
		return nil
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		im.log.Warn().Err(err).Str("value", value).Msg("failed to hash placeholder password")
		return nil
	}
	u := &model.User{
		Username: username,
		Password: hash,
		Name:     value,
		Email:    email,
		Role:     role,
	}
	if err := im.store.CreateUser(ctx, u); err != nil {
		im.log.Warn().Err(err).Str("value", value).Msg("failed to create user during import")
		return nil
	}
	im.log.Info().Str("user", value).Str("role", string(role)).Msg("created placeholder user during import")
	b.users = append(b.users, *u)
	return &b.users[len(b.users)-1]
}

// deriveUsername lowercases the reference and strips everything outside
// [a-z0-9].
func deriveUsername(value string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
