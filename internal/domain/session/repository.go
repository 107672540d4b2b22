package session

import "context"

type Repository interface {
	// FetchSessionByID returns nil, nil for an unknown id.
	FetchSessionByID(ctx context.Context, id string) (*Session, error)
}
