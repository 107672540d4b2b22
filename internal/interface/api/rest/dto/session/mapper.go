package session

import (
	"fitback-api/internal/domain/session"
)

func ToResponse(res session.ValidationResult) Response {
	out := Response{
		IsValid: res.IsValid,
		HasUser: res.User != nil,
	}
	if res.Error != "" {
		msg := res.Error
		out.Error = &msg
	}
	if res.User != nil {
		id := res.User.UUID.String()
		out.UserID = &id
	}

	return out
}
