package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID       uuid.UUID `json:"uuid"`
		ExternalID *string   `json:"external_id"`
		Email      string    `json:"email"`
		Role       string    `json:"role"`
		Linked     bool      `json:"linked"`
		CreatedAt  time.Time `json:"created_at"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
		Page int   `json:"page"`
	}
	Overview struct {
		Email      string `json:"email"`
		UsersTotal int64  `json:"users_total"`
	}
)
