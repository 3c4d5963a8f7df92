// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/recraft/internal/core"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

var userRowColumns = []string{
	"id", "email", "password_hash", "name", "role", "profile_image",
	"phone", "address", "created_at", "updated_at",
}

const testUserID = "6f1c2b1e-51d4-4a52-9a8e-2f6f4f0b7f10"

func TestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)
	now := time.Now()

	t.Run("returns timestamps", func(t *testing.T) {
		u := &User{ID: testUserID, Email: "a@b.co", Name: "A", Role: RoleBuyer}
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(u.ID, u.Email, "", u.Name, u.Role, "", "", "").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Create(context.Background(), u))
		assert.Equal(t, now, u.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(context.Background(), &User{ID: testUserID, Email: "a@b.co"})
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			testUserID, "a@b.co", "hash", "Ana", RoleArtisan, "", "555", "Main St", now, now,
		))

	u, err := repo.GetByID(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.True(t, u.IsArtisan())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.GetByID(ctx, testUserID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE role = $1 AND name ILIKE $2 ORDER BY name ASC`)).
		WithArgs(RoleArtisan, `%50\%%`).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			testUserID, "a@b.co", "hash", "50% Pottery", RoleArtisan, "", "", "", now, now,
		))

	users, err := repo.ListByRole(context.Background(), RoleArtisan, "50%")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePassword_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs(testUserID, "new").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), testUserID, "new")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
