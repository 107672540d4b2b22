package session

import (
	domain "fitback-api/internal/domain/session"
	"fitback-api/internal/domain/user"
)

func fromDBModel(model *Session) *domain.Session {
	s := &domain.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}

	if model.UserUUID != nil {
		u := &user.User{
			UUID:       *model.UserUUID,
			ExternalID: model.UserExternalID,
		}
		if model.UserEmail != nil {
			u.Email = *model.UserEmail
		}
		if model.UserRole != nil {
			u.Role = *model.UserRole
		}
		if model.UserCreatedAt != nil {
			u.CreatedAt = *model.UserCreatedAt
		}
		if model.UserUpdatedAt != nil {
			u.UpdatedAt = *model.UserUpdatedAt
		}
		s.User = u
	}

	return s
}
