// Package repository implements MySQL-backed persistence for users and
// items. Sentinel errors let handlers distinguish failure scenarios
// without inspecting driver error strings themselves.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrItemNotFound is returned when no item matches the id for the given
// owner. A foreign user's item is indistinguishable from a missing one.
var ErrItemNotFound = errors.New("item not found")

// ErrUsernameExists and ErrEmailExists surface the storage layer's
// unique-constraint enforcement. Handlers translate them into HTTP 409.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)
