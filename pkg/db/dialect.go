package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect picks the gorm dialector for a catalog backend. The dsn is passed
// through untouched; for sqlite it is a file path or "file::memory:".
func Dialect(backend, dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		if dsn == "" {
			dsn = "catalog.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported %s type", backend)
	}
}
