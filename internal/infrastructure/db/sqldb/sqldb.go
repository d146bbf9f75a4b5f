package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultTimeout = 5 * time.Second

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures the settings for opening the relational store.
type Config struct {
	Driver  string
	DSN     string
	Timeout time.Duration
	// Debug logs every statement.
	Debug bool
}

// Connect opens the store, verifies connectivity with a ping, and returns the
// handle. sqlite is used when Driver is empty.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Debug {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if dialector.Name() == DriverSQLite {
		// One writer at a time; also keeps in-memory databases on one connection.
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the five marketplace tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}, &productRecord{}, &reviewRecord{}, &chatRecord{}, &messageRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping reports whether the store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "marketplace.db"
	}
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// isDuplicate reports a unique constraint violation. Drivers that do not
// translate their errors are matched on the message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
