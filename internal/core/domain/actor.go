package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleDriver Role = "Driver"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may mutate or read a resource owned by ownerID.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
