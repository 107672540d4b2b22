package services

import (
	"context"
	"fmt"
	"time"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/domain/session"
)

type SessionService struct {
	sessionRepository session.Repository
	now               func() time.Time
}

func NewSessionService(sessionRepository session.Repository) ports.SessionValidator {
	return &SessionService{
		sessionRepository: sessionRepository,
		now:               time.Now,
	}
}

// ValidateSession reports an unusable session in the result; the error is reserved
// for storage failures.
func (ss *SessionService) ValidateSession(ctx context.Context, sessionID string) (session.ValidationResult, error) {
	if sessionID == "" {
		return session.ValidationResult{Error: session.ErrMsgNotFound}, nil
	}

	s, err := ss.sessionRepository.FetchSessionByID(ctx, sessionID)
	if err != nil {
		return session.ValidationResult{}, fmt.Errorf("fetch session: %w", err)
	}

	switch {
	case s == nil:
		return session.ValidationResult{Error: session.ErrMsgNotFound}, nil
	case s.Expired(ss.now()):
		return session.ValidationResult{Error: session.ErrMsgExpired}, nil
	case s.User == nil:
		return session.ValidationResult{Error: session.ErrMsgNoUser}, nil
	}

	return session.ValidationResult{IsValid: true, User: s.User}, nil
}
