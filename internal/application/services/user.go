package services

import (
	"context"

	"fitback-api/internal/application/ports"
	domain "fitback-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
}

func NewUserService(userRepository domain.Repository) ports.UserService {
	return &UserService{userRepository: userRepository}
}

func (us *UserService) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) CountUsers(ctx context.Context) (int64, error) {
	return us.userRepository.CountUsers(ctx)
}
