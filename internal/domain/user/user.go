package user

import "time"

type User struct {
	ID           string    `json:"-"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Update carries the profile fields a user may change. Nil means "leave as is".
type Update struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
