package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDialectRejectsUnknownBackend(t *testing.T) {
	_, err := Dialect("oracle", "x")
	require.Error(t, err)
}

func TestDialectNames(t *testing.T) {
	for backend, name := range map[string]string{
		"sqlite":   "sqlite",
		"postgres": "postgres",
		"mysql":    "mysql",
	} {
		d, err := Dialect(backend, "dsn")
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: products.code")))
	assert.False(t, IsDuplicateKeyErr(errors.New("disk full")))
}

func TestNewTestOpensMemoryDatabase(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error)
}
