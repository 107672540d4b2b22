package ports

import (
	"context"

	"fitback-api/internal/domain/identity"
	"fitback-api/internal/domain/user"
)

type UserService interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	CountUsers(ctx context.Context) (int64, error)
}

type AuthLinkService interface {
	LinkAccount(ctx context.Context, ident *identity.Identity, userUUID user.UUID) (*user.User, error)
}
