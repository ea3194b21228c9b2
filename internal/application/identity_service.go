package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	repo "github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

type IdentityService struct {
	Users    repo.UserRepository
	Roles    repo.RoleRepository
	Sessions repo.SessionRepository
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewIdentityService(users repo.UserRepository, roles repo.RoleRepository, sessions repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *IdentityService {
	return &IdentityService{Users: users, Roles: roles, Sessions: sessions, JWT: jwt, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Register creates an end-user account. Admin rights are never granted here.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := check(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		Email:       in.Email,
		Password:    hash,
		FirstName:   in.FirstName,
		PhoneNumber: in.PhoneNumber,
		Active:      true,
		ConfirmedAt: &now,
	}
	if err := s.Users.Create(ctx, u, entity.RoleEndUser); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"email": in.Email})
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Unknown email, wrong password and inactive accounts fail the same way.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "lookup user failed", err, nil)
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) || !u.Active {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens starts a new session for u, replacing any previous one.
func (s *IdentityService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}

	sess := entity.Session{UserID: u.ID, Email: u.Email, SID: sid, CreatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, sess, s.JWT.RefreshTTL); err != nil {
		helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh validates the refresh token against the live session and rotates both tokens.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrAuth
	}
	if _, err := s.liveSession(ctx, claims); err != nil {
		return TokenPair{}, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || !u.Active {
		return TokenPair{}, ErrAuth
	}
	return s.IssueTokens(ctx, u)
}

func (s *IdentityService) Logout(ctx context.Context, userID int64) error {
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		helpers.LogError(s.Logger, "delete session failed", err, logrus.Fields{"user_id": userID})
		return err
	}
	return nil
}

// CurrentPrincipal resolves an access token to the caller. Roles come from the
// store on every call, never from the token.
func (s *IdentityService) CurrentPrincipal(ctx context.Context, accessToken string) (*Principal, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrAuth
	}
	if _, err := s.liveSession(ctx, claims); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrAuth
	}
	return principalFor(u), nil
}

func (s *IdentityService) liveSession(ctx context.Context, claims *helpers.Claims) (*entity.Session, error) {
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, err
	}
	if sess.SID != claims.SessionID {
		return nil, ErrAuth
	}
	return sess, nil
}

type defaultAccount struct {
	email    string
	password string
	role     string
}

var defaultRoles = []entity.Role{
	{Name: entity.RoleAdmin, Description: "Administrator"},
	{Name: entity.RoleEndUser, Description: "End user"},
}

var defaultAccounts = []defaultAccount{
	{email: "someone@example.com", password: "password", role: entity.RoleEndUser},
	{email: "admin@example.com", password: "passwordAdmin", role: entity.RoleAdmin},
}

// SeedDefaults ensures the default roles and accounts exist. Running it twice changes nothing.
func (s *IdentityService) SeedDefaults(ctx context.Context) error {
	for _, r := range defaultRoles {
		if _, err := s.Roles.FindOrCreate(ctx, r.Name, r.Description); err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}

	for _, a := range defaultAccounts {
		u, err := s.Users.GetByEmail(ctx, a.email)
		switch {
		case err == nil:
			if err := s.Users.AddRole(ctx, u.ID, a.role); err != nil {
				return fmt.Errorf("seed role link %s: %w", a.email, err)
			}
			continue
		case !errors.Is(err, repo.ErrNotFound):
			return fmt.Errorf("seed lookup %s: %w", a.email, err)
		}

		hash, err := helpers.HashPassword(a.password)
		if err != nil {
			return err
		}
		now := time.Now()
		nu := &entity.User{Email: a.email, Password: hash, Active: true, ConfirmedAt: &now}
		if err := s.Users.Create(ctx, nu, a.role); err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}
		helpers.LogInfo(s.Logger, "seeded account", logrus.Fields{"email": a.email, "role": a.role})
	}
	return nil
}
