// Package identity resolves accounts and group membership for the
// interception engine. The engine treats it as a pure lookup service:
// failures degrade to "does not exist" or "not a member".
package identity

import (
	"context"
	"errors"
)

var (
	// ErrAccountNotFound is returned by DisplayName for unknown accounts.
	ErrAccountNotFound = errors.New("account not found")
	// ErrGroupNotFound is returned by Group for unknown group names.
	ErrGroupNotFound = errors.New("group not found")
)

// Group is a resolved group handle.
type Group interface {
	// IsMember reports whether the account name belongs to the group.
	IsMember(ctx context.Context, username string) bool
}

// Resolver answers account and group questions. Implementations must be
// safe for concurrent use.
type Resolver interface {
	// AccountExists reports whether the account name is known.
	AccountExists(ctx context.Context, username string) bool

	// Group resolves a group by name. Returns ErrGroupNotFound when the
	// group does not exist.
	Group(ctx context.Context, name string) (Group, error)

	// DisplayName returns the account's display name. Returns
	// ErrAccountNotFound for unknown accounts.
	DisplayName(ctx context.Context, username string) (string, error)
}
