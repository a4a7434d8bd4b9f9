package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"

	"sticker-backend/internal/database"
)

// UseMemory points database.DB at a fresh in-memory sqlite database for the duration
// of the test.
func UseMemory(t testing.TB) {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})
}
