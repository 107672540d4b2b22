package user

import (
	"context"
)

type Repository interface {
	FetchUserByExternalID(ctx context.Context, externalID string) (*User, error)
	FetchUsers(ctx context.Context, page int) (Users, error)
	CountUsers(ctx context.Context) (int64, error)
	// LinkIdentity returns nil, nil when no user matches uuid.
	LinkIdentity(ctx context.Context, uuid UUID, externalID, email string) (*User, error)
}
