// Package session binds opaque client-held tokens to a privilege role with
// per-entry expiration.
package session

import (
	"context"
	"time"
)

// Role is the privilege marker stored against a session token.
type Role string

const (
	// RoleAdmin unlocks the tool-calling surface.
	RoleAdmin Role = "admin"
	// RoleNone is the resolution for absent, expired, or unreadable sessions.
	RoleNone Role = ""
)

// DefaultTTL matches the 24-hour session lifetime of the transport cookie.
const DefaultTTL = 24 * time.Hour

// Store is the durable token-to-role mapping. Sessions are single-role and
// short-lived, so there is no update operation.
type Store interface {
	// Create mints a fresh unguessable identifier and persists it as admin
	// with the store's fixed time-to-live.
	Create(ctx context.Context) (string, error)

	// Resolve returns the role bound to id. Absent, expired, or unreadable
	// entries resolve to RoleNone; the store never fails open.
	Resolve(ctx context.Context, id string) Role

	// Revoke deletes the entry. Revoking an unknown id is not an error.
	Revoke(ctx context.Context, id string) error
}
