// Package testutil provides isolated, migrated databases for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/migrations"
)

// NewDB opens a private in-memory SQLite database with all migrations applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewEmptyDB(t)
	require.NoError(t, migrations.Up(db))
	return db
}

// NewEmptyDB opens a private in-memory SQLite database without any schema.
func NewEmptyDB(t testing.TB) *gorm.DB {
	t.Helper()
	c := config.Defaults()
	c.DBConnection = "sqlite"
	c.LogLevel = "silent"
	c.DatabaseURI = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := config.Open(c)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
