package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "external_id", "email", "role", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_LinkIdentity(t *testing.T) {
	id := uuid.New()
	ext := "ext-123"
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantNil bool
		wantErr error
		errText string
	}{
		{
			name: "linked",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
					WithArgs(ext, "a@b.io", id.String()).
					WillReturnRows(pgxmock.NewRows(userColumns).AddRow(id, &ext, "a@b.io", "member", now, now))
			},
		},
		{
			name: "no such user",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
					WithArgs(ext, "a@b.io", id.String()).
					WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "external id taken",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
					WithArgs(ext, "a@b.io", id.String()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantNil: true,
			wantErr: ErrExternalIDTaken,
		},
		{
			name: "driver error surfaced",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
					WithArgs(ext, "a@b.io", id.String()).
					WillReturnError(errors.New("connection reset"))
			},
			wantNil: true,
			errText: "connection reset",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := NewRepository(mock).LinkIdentity(context.Background(), id, ext, "a@b.io")
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.EqualError(t, err, tt.errText)
			default:
				require.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, id, got.UUID)
				require.NotNil(t, got.ExternalID)
				assert.Equal(t, ext, *got.ExternalID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchUserByExternalID(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	ext := "ext-9"
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE external_id = $1")).
		WithArgs(ext).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(id, &ext, "admin@fitback.app", "admin", now, now))

	u, err := NewRepository(mock).FetchUserByExternalID(context.Background(), ext)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsAdmin())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchUserByExternalID_NotFound(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE external_id = $1")).
		WithArgs("ext-missing").
		WillReturnError(pgx.ErrNoRows)

	u, err := NewRepository(mock).FetchUserByExternalID(context.Background(), "ext-missing")
	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchUsers(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	ext := "ext-1"

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(uuid.New(), &ext, "one@fitback.app", "member", now, now).
			AddRow(uuid.New(), nil, "two@fitback.app", "admin", now, now))

	us, err := NewRepository(mock).FetchUsers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, us, 2)
	assert.True(t, us[0].IsLinked())
	assert.False(t, us[1].IsLinked())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountUsers(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := NewRepository(mock).CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
