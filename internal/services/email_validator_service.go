package services

import (
	"context"
	"errors"
	"strings"

	"DripmenStore/internal/model"
)

var ErrInvalidEmail = errors.New("invalid email format")

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// FormatValidator accepts any address shaped like local@domain.tld.
type FormatValidator struct{}

func (FormatValidator) Validate(_ context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if !model.IsEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}
