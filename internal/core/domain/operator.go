package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperatorRole gates administrative operations. Owner implies manager.
type OperatorRole string

const (
	RoleOwner   OperatorRole = "OWNER"
	RoleManager OperatorRole = "MANAGER"
)

// Operator is a platform administrator account.
type Operator struct {
	ID           uuid.UUID    `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Argon2id, never expose
	Role         OperatorRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// AuthContext is the verified caller identity resolved once at the HTTP
// boundary and passed into every administrative operation, keeping the
// settlement engine free of ambient role lookups.
type AuthContext struct {
	AccountID uuid.UUID
	Role      OperatorRole
}

// CanManage reports whether the caller may perform manager-level
// operations (commission config, merchant registry).
func (a AuthContext) CanManage() bool {
	return a.Role == RoleManager || a.Role == RoleOwner
}

// IsOwner reports whether the caller may perform owner-level operations
// (rescue).
func (a AuthContext) IsOwner() bool {
	return a.Role == RoleOwner
}
