package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fitback-api/internal/domain/user"
	"fitback-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.UUID,
		&u.ExternalID,
		&u.Email,
		&u.Role,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *Repository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByExternalID, externalID)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, CountUsers).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return n, nil
}

func (r *Repository) LinkIdentity(ctx context.Context, uuid user.UUID, externalID, email string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, LinkIdentityByID, externalID, email, uuid.String()))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrExternalIDTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
