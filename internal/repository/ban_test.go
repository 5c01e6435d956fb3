package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestBanRepository_IsBanned(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBanRepository(db)
	ctx := context.Background()

	t.Run("not banned", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banned_devices" WHERE device_fingerprint = $1`)).
			WithArgs("abc123", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "device_fingerprint"}))

		banned, err := repo.IsBanned(ctx, "abc123")
		assert.NoError(t, err)
		assert.False(t, banned)
	})

	t.Run("banned", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banned_devices" WHERE device_fingerprint = $1`)).
			WithArgs("abc123", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "device_fingerprint", "reason"}).
				AddRow(1, "abc123", "spam"))

		banned, err := repo.IsBanned(ctx, "abc123")
		assert.NoError(t, err)
		assert.True(t, banned)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanRepository_Ban_InsertOrIgnore(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBanRepository(db)
	ctx := context.Background()

	t.Run("new record", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "banned_devices"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Ban(ctx, "abc123", "spam"))
	})

	t.Run("conflict is a no-op", func(t *testing.T) {
		// ON CONFLICT DO NOTHING returns no row; that is still success.
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "banned_devices"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		assert.NoError(t, repo.Ban(ctx, "abc123", "second reason"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanRepository_Unban(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBanRepository(db)
	ctx := context.Background()

	t.Run("existing record", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "banned_devices" WHERE device_fingerprint = $1`)).
			WithArgs("abc123").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Unban(ctx, "abc123"))
	})

	t.Run("missing record succeeds silently", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "banned_devices" WHERE device_fingerprint = $1`)).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.Unban(ctx, "missing"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banned_devices" ORDER BY banned_at desc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_fingerprint", "reason"}).
			AddRow(2, "newer", "spam").
			AddRow(1, "older", ""))

	records, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "newer", records[0].DeviceFingerprint)
	assert.NoError(t, mock.ExpectationsWereMet())
}
