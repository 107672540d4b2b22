package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"fitback-api/internal/domain/session"
	"fitback-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) session.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchSessionByID(ctx context.Context, id string) (*session.Session, error) {
	s := new(Session)
	err := r.db.QueryRow(ctx, SelectSessionWithUser, id).Scan(
		&s.ID,
		&s.UserID,
		&s.ExpiresAt,
		&s.CreatedAt,

		&s.UserUUID,
		&s.UserExternalID,
		&s.UserEmail,
		&s.UserRole,
		&s.UserCreatedAt,
		&s.UserUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), nil
}
