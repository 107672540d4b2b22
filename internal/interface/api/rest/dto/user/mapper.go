package user

import (
	"fitback-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		UUID:       uDomain.UUID,
		ExternalID: uDomain.ExternalID,
		Email:      uDomain.Email,
		Role:       uDomain.Role,
		Linked:     uDomain.IsLinked(),
		CreatedAt:  uDomain.CreatedAt,
	}
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, 0, len(usDomain))
	for _, u := range usDomain {
		if u == nil {
			continue
		}
		us = append(us, ToResponseUser(*u))
	}

	return us
}
