package ports

import (
	"context"

	"fitback-api/internal/domain/session"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (session.ValidationResult, error)
}
