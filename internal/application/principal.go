package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

// Principal is the authenticated caller of a single request.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

func (p *Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

func principalFor(u *entity.User) *Principal {
	return &Principal{UserID: u.ID, Email: u.Email, Roles: u.RoleNames()}
}

type principalKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Policy decides whether a principal may proceed. A nil return grants access.
type Policy func(*Principal) error

func Authenticated() Policy {
	return func(p *Principal) error { return nil }
}

func RequireRole(name string) Policy {
	return func(p *Principal) error {
		if p.HasRole(name) {
			return nil
		}
		return fmt.Errorf("%w: role %q required", ErrForbidden, name)
	}
}

// All grants access only when every policy does.
func All(policies ...Policy) Policy {
	return func(p *Principal) error {
		for _, pol := range policies {
			if err := pol(p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Authorize evaluates policy against the principal in ctx.
func Authorize(ctx context.Context, policy Policy) (*Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return nil, ErrAuth
	}
	if err := policy(p); err != nil {
		return nil, err
	}
	return p, nil
}
