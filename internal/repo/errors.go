// Package repo declares the sentinel errors shared by the memory and
// postgres store implementations so handlers can match on them without
// knowing which backend is wired in.
package repo

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already in use")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnknownIngredient    = errors.New("unknown ingredient id")
	ErrInvalidTransition    = errors.New("invalid status transition")
)
