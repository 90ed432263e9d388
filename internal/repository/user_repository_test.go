package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var userRowColumns = []string{"id", "username", "email", "password_hash", "role", "created_at", "last_login_at"}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := models.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: []byte("hash"),
		Role:         models.UserRoleAdmin,
		CreatedAt:    created,
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u1", "alice", "alice@x.com", []byte("hash"), "Admin", created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), user))
}

func TestUserRepository_CreateUniqueViolation(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), models.User{ID: "u1", Username: "alice", Role: models.UserRoleAdmin})
	assert.ErrorIs(t, err, ErrUserConflict)
}

func TestUserRepository_CreatePassesOtherErrors(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(boom)

	err := repo.Create(context.Background(), models.User{ID: "u1"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUserConflict)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	lastLogin := created.Add(time.Hour)
	rows := pgxmock.NewRows(userRowColumns).
		AddRow("u1", "alice", "alice@x.com", []byte("hash"), "Admin", created, &lastLogin)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
	assert.Equal(t, []byte("hash"), user.PasswordHash)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, lastLogin, *user.LastLoginAt)
}

func TestUserRepository_FindByUsernameNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice", "other@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsernameOrEmail(context.Background(), "alice", "other@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE users SET last_login_at`).
		WithArgs("u1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET last_login_at`).
		WithArgs("missing", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), "u1", at))
	assert.ErrorIs(t, repo.UpdateLastLogin(context.Background(), "missing", at), ErrUserNotFound)
}
