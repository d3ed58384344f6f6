package repository

import (
	"context"
	"errors"
	"strings"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"

	"github.com/spf13/cast"
)

var ErrEmailTaken = errors.New("email already registered")

type AuthRepository struct {
	DB store.Store
}

func NewAuthRepository(db store.Store) *AuthRepository {
	return &AuthRepository{DB: db}
}

// IsAuthenticated reads the auth token flag. Anything that is not a true
// boolean string counts as signed out.
func (r *AuthRepository) IsAuthenticated(ctx context.Context) (bool, error) {
	var ok bool
	err := r.DB.View(ctx, func(tx store.Tx) error {
		data, err := tx.Get(KeyAuthToken)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = cast.ToBool(strings.TrimSpace(string(data)))
		return nil
	})
	return ok, err
}

func (r *AuthRepository) SetAuthenticated(ctx context.Context, on bool) error {
	return r.DB.Update(ctx, func(tx store.Tx) error {
		return tx.Put(KeyAuthToken, []byte(cast.ToString(on)))
	})
}

// CreateAccount stores acc. Emails are compared case-insensitively.
func (r *AuthRepository) CreateAccount(ctx context.Context, acc model.Account) error {
	return r.DB.Update(ctx, func(tx store.Tx) error {
		accounts, err := readList[model.Account](tx, KeyAccounts)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if strings.EqualFold(a.Email, acc.Email) {
				return ErrEmailTaken
			}
		}
		return writeList(tx, KeyAccounts, append(accounts, acc))
	})
}

func (r *AuthRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var found *model.Account
	err := r.DB.View(ctx, func(tx store.Tx) error {
		accounts, err := readList[model.Account](tx, KeyAccounts)
		if err != nil {
			return err
		}
		for i := range accounts {
			if strings.EqualFold(accounts[i].Email, email) {
				found = &accounts[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
