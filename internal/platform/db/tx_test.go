package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"erp_backend/internal/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	return gdb
}

func countCompanies(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&entity.Company{}).Count(&n).Error)
	return n
}

func TestWithinTransaction_Commit(t *testing.T) {
	gdb := setupTestDB(t)
	tr := NewTransactor(gdb)

	err := tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return Conn(ctx, gdb).Create(&entity.Company{Name: "Acme", Code: "ACME", Country: entity.DefaultCountry}).Error
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), countCompanies(t, gdb))
}

func TestWithinTransaction_RollbackOnError(t *testing.T) {
	gdb := setupTestDB(t)
	tr := NewTransactor(gdb)
	boom := errors.New("boom")

	err := tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := Conn(ctx, gdb).Create(&entity.Company{Name: "Acme", Code: "ACME", Country: entity.DefaultCountry}).Error; err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countCompanies(t, gdb))
}

func TestConn_FallsBackWithoutTransaction(t *testing.T) {
	gdb := setupTestDB(t)

	conn := Conn(context.Background(), gdb)

	require.NotNil(t, conn)
	require.NoError(t, conn.Create(&entity.Company{Name: "Acme", Code: "ACME", Country: entity.DefaultCountry}).Error)
	assert.Equal(t, int64(1), countCompanies(t, gdb))
}

func TestIsUniqueViolation(t *testing.T) {
	gdb := setupTestDB(t)
	require.NoError(t, gdb.Create(&entity.User{Email: "a@example.com", Password: "x", FirstName: "A"}).Error)
	dupErr := gdb.Create(&entity.User{Email: "a@example.com", Password: "y", FirstName: "B"}).Error
	require.Error(t, dupErr)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sqlite duplicate translated", dupErr, true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped postgres unique violation", errors.Join(errors.New("insert"), &pgconn.PgError{Code: "23505"}), true},
		{"postgres other error", &pgconn.PgError{Code: "23503"}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestPinger(t *testing.T) {
	gdb := setupTestDB(t)

	assert.NoError(t, NewPinger(gdb).Ping(context.Background()))
	assert.Error(t, NewPinger(nil).Ping(context.Background()))
}
