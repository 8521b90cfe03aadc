package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// UserInput is the admin create/update payload. Password is optional on
// update: empty leaves the stored hash untouched.
type UserInput struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	CompanyName   string `json:"companyName"`
	Department    string `json:"department"`
	ContactNumber string `json:"contactNumber"`
	Designation   string `json:"designation"`
}

type UserService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewUserService(db *gorm.DB, log zerolog.Logger) *UserService {
	return &UserService{db: db, log: log.With().Str("component", "users").Logger()}
}

// List returns the users visible to the actor: admins see everyone, agents
// see agents and users (for assignment pickers), plain users see only
// themselves.
func (s *UserService) List(ctx context.Context, actor policy.Actor) ([]model.User, error) {
	roles, selfOnly := policy.UserListRoles(actor)
	tx := s.db.WithContext(ctx).Order("name ASC")
	if selfOnly {
		tx = tx.Where("id = ?", actor.UserID)
	} else if roles != nil {
		tx = tx.Where("role IN ?", roles)
	}
	var users []model.User
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsernameOrEmail matches case-insensitively on either column; used by
// login and by the import pipeline's duplicate check.
func (s *UserService) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
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

// Authenticate verifies credentials for login.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.GetByUsernameOrEmail(ctx, username, username)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, errs.ErrPermissionDenied
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, actor policy.Actor, in UserInput) (*model.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, errs.ErrPermissionDenied
	}
	if in.Username == "" || in.Password == "" || in.Name == "" || in.Email == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: username, password, name, email and role are required", errs.ErrValidation)
	}
	if !model.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, in.Role)
	}
	if existing, err := s.GetByUsernameOrEmail(ctx, in.Username, in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username or email already exists", errs.ErrValidation)
	} else if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:      strings.ToLower(in.Username),
		Password:      hash,
		Name:          in.Name,
		Email:         in.Email,
		Role:          model.Role(in.Role),
		CompanyName:   in.CompanyName,
		Department:    in.Department,
		ContactNumber: in.ContactNumber,
		Designation:   in.Designation,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	return u, nil
}

func (s *UserService) Update(ctx context.Context, actor policy.Actor, id int64, in UserInput) (*model.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, errs.ErrPermissionDenied
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != "" && !model.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, in.Role)
	}

	if in.Username != "" {
		u.Username = strings.ToLower(in.Username)
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = model.Role(in.Role)
	}
	u.CompanyName = in.CompanyName
	u.Department = in.Department
	u.ContactNumber = in.ContactNumber
	u.Designation = in.Designation
	if strings.TrimSpace(in.Password) != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Self-deletion is refused outright; users still
// referenced by tickets (as creator or assignee) conflict instead of
// cascading.
func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanManageUsers(actor) {
		return errs.ErrPermissionDenied
	}
	if id == actor.UserID {
		return errs.ErrSelfDeleteDenied
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var tickets int64
	if err := s.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("created_by_id = ? OR assigned_to_id = ?", id, id).
		Count(&tickets).Error; err != nil {
		return err
	}
	if tickets > 0 {
		return &errs.ConflictError{Resource: "user", Blocker: "tickets", Count: tickets}
	}
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

// ChangePassword lets a user rotate their own password (verifying the
// current one) or an admin reset anyone's without verification.
func (s *UserService) ChangePassword(ctx context.Context, actor policy.Actor, id int64, current, next string) error {
	if id != actor.UserID && actor.Role != model.RoleAdmin {
		return errs.ErrPermissionDenied
	}
	if next == "" {
		return fmt.Errorf("%w: new password is required", errs.ErrValidation)
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin && !auth.CheckPassword(u.Password, current) {
		return fmt.Errorf("%w: current password is incorrect", errs.ErrValidation)
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(u).Update("password", hash).Error
}
