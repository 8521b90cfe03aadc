package importer

import (
	"context"
	"errors"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
)

// Store is the slice of the entity store the pipeline needs. The batch
// fetches both rosters once up front and falls back to the lookup/create
// calls only for references it cannot resolve in memory.
type Store interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error

	Users(ctx context.Context) ([]model.User, error)
	UserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error

	CreateTicket(ctx context.Context, t *model.Ticket) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the gorm-backed Store used outside of tests.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *gormStore) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) CreateCategory(ctx context.Context, c *model.Category) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormStore) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) UserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", username, email).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormStore) CreateTicket(ctx context.Context, t *model.Ticket) error {
	return s.db.WithContext(ctx).Create(t).Error
}
