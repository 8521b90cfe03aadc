package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"gorm.io/gorm"
)

// CategoryInput is the create/update payload for categories.
type CategoryInput struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Subcategories(ctx context.Context, parentID int64) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByName matches case-insensitively; used by the import pipeline's
// resolve-or-create step.
func (s *CategoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) Create(ctx context.Context, actor policy.Actor, in CategoryInput) (*model.Category, error) {
	if !policy.CanManageCategories(actor) {
		return nil, errs.ErrPermissionDenied
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	c := &model.Category{Name: in.Name, ParentID: in.ParentID}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, actor policy.Actor, id int64, in CategoryInput) (*model.Category, error) {
	if !policy.CanManageCategories(actor) {
		return nil, errs.ErrPermissionDenied
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if in.ParentID != nil && *in.ParentID == id {
		return nil, fmt.Errorf("%w: category cannot be its own parent", errs.ErrValidation)
	}
	c.Name = in.Name
	c.ParentID = in.ParentID
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses while subcategories or tickets still reference the
// category, with a count-bearing conflict error.
func (s *CategoryService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanManageCategories(actor) {
		return errs.ErrPermissionDenied
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var subcategories int64
	if err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("parent_id = ?", id).
		Count(&subcategories).Error; err != nil {
		return err
	}
	if subcategories > 0 {
		return &errs.ConflictError{Resource: "category", Blocker: "subcategories", Count: subcategories}
	}

	var tickets int64
	if err := s.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("category_id = ? OR subcategory_id = ?", id, id).
		Count(&tickets).Error; err != nil {
		return err
	}
	if tickets > 0 {
		return &errs.ConflictError{Resource: "category", Blocker: "tickets", Count: tickets}
	}

	return s.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}
