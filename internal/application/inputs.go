package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oksasatya/go-storefront/pkg/validation"
)

var validate = validation.New()

type RegisterInput struct {
	Email       string `validate:"required,email,max=255"`
	Password    string `validate:"required,pwd"`
	FirstName   string `validate:"required,max=45"`
	PhoneNumber string `validate:"required,phone"`
}

type ItemInput struct {
	Name  string `validate:"required,max=100"`
	Price int64  `validate:"gte=0,lte=1000000000"`
	Intro string `validate:"required"`
}

// normalizeEmail is applied before every email lookup or write; users.email holds lower case only.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// check runs struct validation and folds failures into ErrValidation.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	details := validation.ToDetails(err)
	fields := make([]string, 0, len(details))
	for field, msg := range details {
		fields = append(fields, field+" "+msg)
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, "; "))
}

// checkVar validates a single value against tag.
func checkVar(field, value, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s is invalid", ErrValidation, field)
	}
	return nil
}
