package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/go-storefront/internal/domain/repository"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuth           = errors.New("authentication required")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrPaymentGateway = errors.New("payment gateway error")

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuth)
	ErrNotOwnAccount      = fmt.Errorf("%w: you can only delete your own account", ErrAuth)
)

// notFound translates a repository miss into the application error, keeping other errors intact.
func notFound(err error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
