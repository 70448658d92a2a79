package consumption

import (
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/monospace/pagebuilder/pkg/testsupport"
)

// Consumption has no natural identifier column; the handlers leave the
// identifier pair unset and construction must accept that.
func TestBunRepositoryConstructs(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	db := bun.NewDB(sqlDB, sqlitedialect.New())

	if repo := NewConsumptionRepository(db); repo == nil {
		t.Fatal("expected consumption repository")
	}
}
