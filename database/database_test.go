package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestSeedRoomsSkipsExistingOrg(t *testing.T) {
	db, mock := mockDB(t)
	org := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "rooms" WHERE org_id = $1`)).
		WithArgs(org).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	require.NoError(t, SeedRooms(context.Background(), db, org))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRoomsCreatesDefaults(t *testing.T) {
	db, mock := mockDB(t)
	org := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "rooms"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	rows := sqlmock.NewRows([]string{"id", "capacity", "is_active", "is_deleted"})
	for i := 0; i < 3; i++ {
		rows.AddRow(uuid.New(), 8, true, false)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "rooms"`)).WillReturnRows(rows)

	require.NoError(t, SeedRooms(context.Background(), db, org))
	assert.NoError(t, mock.ExpectationsWereMet())
}
