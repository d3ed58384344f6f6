package model

import "time"

// Account is a local shopper login.
type Account struct {
	Email string `json:"email"`
	// stored with the record; never sent over the API
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountView is what the API exposes.
type AccountView struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Account) View() AccountView {
	return AccountView{Email: a.Email, CreatedAt: a.CreatedAt}
}
