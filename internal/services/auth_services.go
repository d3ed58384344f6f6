package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type AuthService struct {
	Users     *repository.AuthRepository
	Validator EmailValidator
	Bus       *events.Bus
}

func NewAuthService(u *repository.AuthRepository, v EmailValidator, bus *events.Bus) *AuthService {
	if v == nil {
		v = FormatValidator{}
	}
	return &AuthService{Users: u, Validator: v, Bus: bus}
}

func (s *AuthService) validatePassword(pw, confirm string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	if pw != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Register creates a local account. It does not sign the shopper in.
func (s *AuthService) Register(ctx context.Context, email, password, confirm string) (*model.AccountView, error) {
	email = strings.TrimSpace(email)
	if err := s.Validator.Validate(ctx, email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password, confirm); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acc := model.Account{Email: email, PasswordHash: string(hash), CreatedAt: time.Now().UTC()}
	if err := s.Users.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, "Account created, please login")
	view := acc.View()
	return &view, nil
}

// Login checks the password and raises the auth token flag.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AccountView, error) {
	acc, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// do not reveal whether email exists
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.Users.SetAuthenticated(ctx, true); err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, "Welcome back!")
	view := acc.View()
	return &view, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.Users.SetAuthenticated(ctx, false); err != nil {
		return err
	}
	s.Bus.Notify(events.LevelInfo, "Logged out")
	return nil
}

func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.Users.IsAuthenticated(ctx)
}
