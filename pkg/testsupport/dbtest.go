package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var dbSequence atomic.Int64

// NewSQLiteMemoryDB opens a fresh in-memory SQLite database. Each call gets
// its own shared-cache namespace so parallel tests do not see each other's
// tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("builder_test_%d", dbSequence.Add(1))
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
