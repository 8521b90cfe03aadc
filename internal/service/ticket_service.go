package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/pagination"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// StatusCounts is the status breakdown returned with every ticket list.
// All four lifecycle states are counted; the breakdown is computed against
// the same condition set as the list itself.
type StatusCounts struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// Total sums all buckets.
func (s StatusCounts) Total() int64 {
	return s.Open + s.InProgress + s.Resolved + s.Closed
}

// TicketList is the paginated list response. Pagination and StatusCounts
// are nil for unpaginated calls, where Tickets carries the full role-scoped
// result set.
type TicketList struct {
	Tickets      []model.Ticket   `json:"tickets"`
	Pagination   *pagination.Meta `json:"pagination,omitempty"`
	StatusCounts *StatusCounts    `json:"statusCounts,omitempty"`
}

// TicketCreate is the typed create payload.
type TicketCreate struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	Priority          string  `json:"priority"`
	SupportType       string  `json:"supportType"`
	CategoryID        int64   `json:"categoryId"`
	SubcategoryID     *int64  `json:"subcategoryId"`
	AssignedToID      *int64  `json:"assignedToId"`
	ContactEmail      string  `json:"contactEmail"`
	ContactName       string  `json:"contactName"`
	ContactPhone      string  `json:"contactPhone"`
	ContactDepartment string  `json:"contactDepartment"`
	DueDate           *string `json:"dueDate"`
	AttachmentURL     string  `json:"attachmentUrl"`
	AttachmentName    string  `json:"attachmentName"`
}

type TicketService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewTicketService(db *gorm.DB, log zerolog.Logger) *TicketService {
	return &TicketService{db: db, log: log.With().Str("component", "tickets").Logger()}
}

func (s *TicketService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Category").
		Preload("Subcategory").
		Preload("CreatedBy").
		Preload("AssignedTo")
}

// List returns the actor's visible tickets narrowed by the filter set.
// With a page it runs the count, the status breakdown and the page query
// against the same condition set; without one it returns the full list.
func (s *TicketService) List(ctx context.Context, actor policy.Actor, filter TicketFilter, page *pagination.Page) (*TicketList, error) {
	if page == nil {
		var tickets []model.Ticket
		tx := filter.apply(s.preloaded(ctx).Model(&model.Ticket{}), actor)
		if err := tx.Order("tickets.created_at DESC").Find(&tickets).Error; err != nil {
			return nil, err
		}
		return &TicketList{Tickets: tickets}, nil
	}

	if page.Number < 1 || page.Limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", errs.ErrValidation)
	}

	var total int64
	if err := filter.apply(s.db.WithContext(ctx).Model(&model.Ticket{}), actor).Count(&total).Error; err != nil {
		return nil, err
	}

	counts, err := s.statusCounts(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	var tickets []model.Ticket
	tx := filter.apply(s.preloaded(ctx).Model(&model.Ticket{}), actor)
	if err := tx.Order("tickets.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&tickets).Error; err != nil {
		return nil, err
	}

	meta := pagination.NewMeta(*page, total)
	return &TicketList{Tickets: tickets, Pagination: &meta, StatusCounts: counts}, nil
}

func (s *TicketService) statusCounts(ctx context.Context, actor policy.Actor, filter TicketFilter) (*StatusCounts, error) {
	var rows []struct {
		Status model.TicketStatus
		N      int64
	}
	tx := filter.apply(s.db.WithContext(ctx).Model(&model.Ticket{}), actor)
	if err := tx.Select("tickets.status AS status, COUNT(*) AS n").
		Group("tickets.status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := &StatusCounts{}
	for _, r := range rows {
		switch r.Status {
		case model.TicketStatusOpen:
			counts.Open = r.N
		case model.TicketStatusInProgress:
			counts.InProgress = r.N
		case model.TicketStatusResolved:
			counts.Resolved = r.N
		case model.TicketStatusClosed:
			counts.Closed = r.N
		}
	}
	return counts, nil
}

// Get loads one ticket with joined relations, enforcing visibility.
func (s *TicketService) Get(ctx context.Context, actor policy.Actor, id int64) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.preloaded(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if !policy.CanViewTicket(actor, &t) {
		return nil, errs.ErrPermissionDenied
	}
	return &t, nil
}

// Create files a new ticket for the actor. createdById is always the actor;
// assignment and status are role-gated the same way updates are.
func (s *TicketService) Create(ctx context.Context, actor policy.Actor, in TicketCreate) (*model.Ticket, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", errs.ErrValidation)
	}
	if in.CategoryID == 0 {
		return nil, fmt.Errorf("%w: categoryId is required", errs.ErrValidation)
	}
	if in.SubcategoryID != nil && *in.SubcategoryID == in.CategoryID {
		return nil, fmt.Errorf("%w: subcategory must differ from category", errs.ErrValidation)
	}

	var category model.Category
	if err := s.db.WithContext(ctx).First(&category, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, err
	}

	status := model.TicketStatusOpen
	if actor.IsStaff() && in.Status != "" {
		status, _ = model.NormalizeStatus(in.Status)
	}
	priority, _ := model.NormalizePriority(in.Priority)
	supportType, _ := model.NormalizeSupportType(in.SupportType)

	t := &model.Ticket{
		Title:             in.Title,
		Description:       in.Description,
		Status:            status,
		Priority:          priority,
		SupportType:       supportType,
		ContactEmail:      in.ContactEmail,
		ContactName:       in.ContactName,
		ContactPhone:      in.ContactPhone,
		ContactDepartment: in.ContactDepartment,
		CategoryID:        in.CategoryID,
		SubcategoryID:     in.SubcategoryID,
		CreatedByID:       actor.UserID,
		AttachmentURL:     in.AttachmentURL,
		AttachmentName:    in.AttachmentName,
	}
	if in.AssignedToID != nil && actor.IsStaff() {
		t.AssignedToID = in.AssignedToID
	}
	if in.DueDate != nil {
		t.DueDate = model.ParseDueDate(*in.DueDate)
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	s.log.Info().Int64("ticket_id", t.ID).Int64("created_by", actor.UserID).Msg("ticket created")
	return s.Get(ctx, actor, t.ID)
}

// Update applies a role-sanitized change set to the ticket. Fields the role
// may not touch are dropped from the payload, not rejected.
func (s *TicketService) Update(ctx context.Context, actor policy.Actor, id int64, upd policy.TicketUpdate) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if !policy.CanUpdateTicket(actor, &t) {
		return nil, errs.ErrPermissionDenied
	}

	changes := policy.SanitizeTicketUpdate(actor, &t, upd)
	if len(changes) == 0 {
		return s.Get(ctx, actor, id)
	}
	if cid, ok := changes["category_id"]; ok {
		if sub, ok2 := changes["subcategory_id"].(*int64); ok2 && sub != nil && *sub == cid.(int64) {
			return nil, fmt.Errorf("%w: subcategory must differ from category", errs.ErrValidation)
		}
	}
	if err := s.db.WithContext(ctx).Model(&t).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, actor, id)
}

// Delete removes a ticket; its comments go with it (FK cascade).
func (s *TicketService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrTicketNotFound
		}
		return err
	}
	if !policy.CanDeleteTicket(actor, &t) {
		return errs.ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Delete(&model.Ticket{}, id).Error; err != nil {
		return err
	}
	s.log.Info().Int64("ticket_id", id).Int64("deleted_by", actor.UserID).Msg("ticket deleted")
	return nil
}

// Comments lists a ticket's comment thread, oldest first. Internal comments
// are filtered out for non-staff actors.
func (s *TicketService) Comments(ctx context.Context, actor policy.Actor, ticketID int64) ([]model.Comment, error) {
	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if !policy.CanViewTicket(actor, &t) {
		return nil, errs.ErrPermissionDenied
	}
	var comments []model.Comment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return policy.FilterComments(actor, comments), nil
}

// AddComment appends to the ticket's thread and touches the parent's
// updatedAt. The internal flag is demoted for non-staff authors.
func (s *TicketService) AddComment(ctx context.Context, actor policy.Actor, ticketID int64, content string, isInternal bool) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", errs.ErrValidation)
	}
	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if !policy.CanComment(actor, &t) {
		return nil, errs.ErrPermissionDenied
	}

	c := &model.Comment{
		TicketID:   ticketID,
		UserID:     actor.UserID,
		Content:    content,
		IsInternal: policy.DemoteInternalFlag(actor, isInternal),
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&t).UpdateColumn("updated_at", gorm.Expr("NOW()")).Error; err != nil {
		s.log.Warn().Err(err).Int64("ticket_id", ticketID).Msg("failed to touch ticket after comment")
	}
	if err := s.db.WithContext(ctx).Preload("User").First(c, c.ID).Error; err != nil {
		return nil, err
	}
	return c, nil
}
