package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// RoleNames constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// RoleNameByID maps a role ID to its name. Unknown IDs return an empty string.
func RoleNameByID(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}

// CheckRoleSeed verifies that the stored roles carry the ids tokens and
// role gates rely on.
func CheckRoleSeed(roles []Role) error {
	byID := make(map[int]string, len(roles))
	for _, role := range roles {
		byID[role.ID] = role.RoleName
	}
	for _, id := range []int{RoleIDAdmin, RoleIDDoctor, RoleIDPatient} {
		want := RoleNameByID(id)
		got, ok := byID[id]
		if !ok {
			return fmt.Errorf("role %d (%s) is missing", id, want)
		}
		if got != want {
			return fmt.Errorf("role %d is %q, expected %q", id, got, want)
		}
	}
	return nil
}

// Actor is the caller on whose behalf an operation runs.
// It is resolved by the delivery layer and passed explicitly into usecases.
type Actor struct {
	ID     uuid.UUID
	RoleID int
}

func (a Actor) IsAdmin() bool {
	return a.RoleID == RoleIDAdmin
}

func (a Actor) IsDoctor() bool {
	return a.RoleID == RoleIDDoctor
}

func (a Actor) IsPatient() bool {
	return a.RoleID == RoleIDPatient
}
