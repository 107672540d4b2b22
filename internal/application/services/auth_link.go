package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/domain/identity"
	domain "fitback-api/internal/domain/user"
)

var (
	ErrNoSession    = errors.New("no authenticated session found")
	ErrUserNotFound = errors.New("user not found")
)

type AuthLinkService struct {
	userRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewAuthLinkService(
	userRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.AuthLinkService {
	return &AuthLinkService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

// LinkAccount copies the hosted session's subject and email onto the local user.
// Without a session nothing is written. Write errors come back unchanged.
func (as *AuthLinkService) LinkAccount(
	ctx context.Context,
	ident *identity.Identity,
	userUUID domain.UUID,
) (*domain.User, error) {
	if ident == nil || ident.ExternalID == "" {
		return nil, ErrNoSession
	}

	u, err := as.userRepository.LinkIdentity(ctx, userUUID, ident.ExternalID, ident.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	as.mCounter.WithLabelValues("user_linked_total").Inc()

	return u, nil
}
