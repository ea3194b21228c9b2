package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	repo "github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// AccountService covers profile self-service and user administration.
type AccountService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewAccountService(users repo.UserRepository, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, Logger: logger}
}

func (s *AccountService) ViewProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *AccountService) EditEmail(ctx context.Context, userID int64, email string) (*entity.User, error) {
	email = normalizeEmail(email)
	if err := checkVar("email", email, "required,email,max=255"); err != nil {
		return nil, err
	}
	if other, err := s.Users.GetByEmail(ctx, email); err == nil && other.ID != userID {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.edit(ctx, userID, func(u *entity.User) { u.Email = email })
}

func (s *AccountService) EditName(ctx context.Context, userID int64, name string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if err := checkVar("name", name, "required,max=45"); err != nil {
		return nil, err
	}
	return s.edit(ctx, userID, func(u *entity.User) { u.FirstName = name })
}

func (s *AccountService) EditPhone(ctx context.Context, userID int64, phone string) (*entity.User, error) {
	phone = strings.TrimSpace(phone)
	if err := checkVar("phone_number", phone, "required,phone"); err != nil {
		return nil, err
	}
	return s.edit(ctx, userID, func(u *entity.User) { u.PhoneNumber = phone })
}

func (s *AccountService) edit(ctx context.Context, userID int64, mutate func(*entity.User)) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	mutate(u)
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		helpers.LogError(s.Logger, "update profile failed", err, logrus.Fields{"user_id": userID})
		return nil, notFound(err, "user")
	}
	return u, nil
}

// DeleteSelf removes the caller's own account. Any other target is refused and nothing is deleted.
func (s *AccountService) DeleteSelf(ctx context.Context, callerID, targetID int64) error {
	if callerID != targetID {
		return ErrNotOwnAccount
	}
	if err := s.Users.Delete(ctx, targetID); err != nil {
		return notFound(err, "user")
	}
	helpers.LogInfo(s.Logger, "user deleted own account", logrus.Fields{"user_id": targetID})
	return nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]entity.User, error) {
	if _, err := Authorize(ctx, RequireRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	return s.Users.List(ctx)
}

func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	p, err := Authorize(ctx, RequireRole(entity.RoleAdmin))
	if err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}
	helpers.LogInfo(s.Logger, "user deleted by admin", logrus.Fields{"user_id": id, "admin_id": p.UserID})
	return nil
}
