package user

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

type (
	UUID = uuid.UUID
	User struct {
		UUID UUID
		// ExternalID is the hosted auth provider's subject; nil until the account is linked.
		ExternalID *string
		Email      string
		Role       string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) IsLinked() bool { return u != nil && u.ExternalID != nil && *u.ExternalID != "" }
