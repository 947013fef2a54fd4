package converter

import (
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
)

// UserToSummary converts a User entity to a UserSummary DTO. The role name
// falls back to the well-known ID mapping when Role is not preloaded.
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleNameByID(user.RoleID)
	}

	return &dto.UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     role,
	}
}
