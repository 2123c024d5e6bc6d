package db

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"erp_backend/internal/domain/entity"
)

// TestBuildDSN_Parts は個別設定からPostgreSQLのDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_Parts(t *testing.T) {
	t.Parallel()

	cfg := Config{
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5433",
		SSLMode:  "require",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost port=5433 user=testuser password=testpass dbname=testdb sslmode=require"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_URLTakesPrecedence はDATABASE_URLが個別設定より優先されることを検証します。
func TestBuildDSN_URLTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:  "postgres://u:p@db.internal:5432/erp?sslmode=disable",
		Host: "localhost",
		Port: "5432",
	}

	dsn := BuildDSN(cfg)

	if dsn != cfg.URL {
		t.Errorf("expected DSN %q, got %q", cfg.URL, dsn)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// package-level retryInterval is modified
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後に最後のエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	refused := errors.New("connection refused")
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, refused
	}

	_, err := ConnectWithRetry("test-dsn", 50*time.Millisecond, opener)

	if err == nil {
		t.Fatal("expected error after timeout, got nil")
	}
	if !errors.Is(err, refused) {
		t.Errorf("expected wrapped %v, got %v", refused, err)
	}
	if attempts < 2 {
		t.Errorf("expected at least 2 attempts, got %d", attempts)
	}
}

// TestGormConfig_LoggerHidesBoundValues はSQLログに資格情報が出力されないことを検証します。
func TestGormConfig_LoggerHidesBoundValues(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(orig) })

	gdb, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	secretHash := "$2a$10$secret-hash-value"
	if err := gdb.Create(&entity.User{Email: "dup@example.com", Password: secretHash, FirstName: "A"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	var u entity.User
	_ = gdb.Where("email = ?", "ghost@example.com").First(&u).Error
	_ = gdb.Create(&entity.User{Email: "dup@example.com", Password: secretHash, FirstName: "B"}).Error

	out := buf.String()
	if strings.Contains(out, "ghost@example.com") || strings.Contains(out, "dup@example.com") {
		t.Errorf("email leaked into logs: %s", out)
	}
	if strings.Contains(out, secretHash) {
		t.Errorf("password hash leaked into logs: %s", out)
	}
	if strings.Contains(out, "record not found") {
		t.Errorf("record not found should not be logged: %s", out)
	}
}
