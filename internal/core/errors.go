package core

import "errors"

// Domain errors for the name registry and group directory. These are
// sentinel errors rather than the teacher's {Code,Message} pair because
// every caller here already knows which human-readable line to produce
// for its own protocol tag (see internal/server/handlers.go); the error
// value only needs to select a branch.
var (
	// ErrInvalidName means the name fails the 1-30 char alphanumeric rule.
	ErrInvalidName = errors.New("core: invalid name")
	// ErrNameInUse means the name is already held by a client or a group.
	ErrNameInUse = errors.New("core: name already in use")
	// ErrNotFound means a lookup found neither a client nor a group.
	ErrNotFound = errors.New("core: name not found")
	// ErrUnknownMember means a requested group member is not an online client.
	ErrUnknownMember = errors.New("core: member is not an online client")
	// ErrTooFewMembers means fewer than two distinct clients would be in the group.
	ErrTooFewMembers = errors.New("core: group requires at least two distinct members")
)
