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

type FaqInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID *int64 `json:"categoryId"`
}

type FaqService struct {
	db *gorm.DB
}

func NewFaqService(db *gorm.DB) *FaqService {
	return &FaqService{db: db}
}

// List returns FAQs, optionally narrowed to one category.
func (s *FaqService) List(ctx context.Context, categoryID *int64) ([]model.Faq, error) {
	tx := s.db.WithContext(ctx).Order("view_count DESC, id ASC")
	if categoryID != nil {
		tx = tx.Where("category_id = ?", *categoryID)
	}
	var faqs []model.Faq
	if err := tx.Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// Get returns one FAQ and bumps its view counter.
func (s *FaqService) Get(ctx context.Context, id int64) (*model.Faq, error) {
	var f model.Faq
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFaqNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&f).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	f.ViewCount++
	return &f, nil
}

func (s *FaqService) Create(ctx context.Context, actor policy.Actor, in FaqInput) (*model.Faq, error) {
	if actor.Role != model.RoleAdmin {
		return nil, errs.ErrPermissionDenied
	}
	if in.Question == "" || in.Answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", errs.ErrValidation)
	}
	f := &model.Faq{Question: in.Question, Answer: in.Answer, CategoryID: in.CategoryID}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FaqService) Update(ctx context.Context, actor policy.Actor, id int64, in FaqInput) (*model.Faq, error) {
	if actor.Role != model.RoleAdmin {
		return nil, errs.ErrPermissionDenied
	}
	var f model.Faq
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFaqNotFound
		}
		return nil, err
	}
	if in.Question != "" {
		f.Question = in.Question
	}
	if in.Answer != "" {
		f.Answer = in.Answer
	}
	f.CategoryID = in.CategoryID
	if err := s.db.WithContext(ctx).Save(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
