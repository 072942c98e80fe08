package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects with the given dialector and installs the OpenTelemetry plugin
// so statements join the caller's span.
func Open(dialector gorm.Dialector, log gormlogger.Interface) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if log != nil {
		cfg.Logger = log
	}
	conn, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithoutQueryVariables())); err != nil {
		return nil, fmt.Errorf("install tracing plugin: %w", err)
	}
	return conn, nil
}

// NewTest opens a private in-memory sqlite database. The pool is pinned to a
// single connection because every sqlite memory connection is its own database.
func NewTest() (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}
