package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB opens a gorm handle over a sqlmock connection so individual
// queries can be asserted against the postgres dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepositoryGetByEmailSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(1, "reader", "reader@e.com")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "reader@e.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "reader", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryUpdateStatsSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "groups" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStats(context.Background(), 3, 7, time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryPropagatesConnectionErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(sql.ErrConnDone)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
