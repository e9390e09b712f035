package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/agenda/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	runner := NewRunner(setupTestDB(t), fstest.MapFS{})

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestMigrationsSortedAndParsed(t *testing.T) {
	runner := NewRunner(setupTestDB(t), fstest.MapFS{
		"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"README.md":      {Data: []byte("ignored")},
	})

	ms, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(ms))
	}
	if ms[0].Version != 1 || ms[0].Name != "first" || ms[1].Version != 2 {
		t.Errorf("unexpected migrations: %+v", ms)
	}
}

func TestMigrationsRejectBadFilenames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"missing underscore": {"001.sql": {Data: []byte("")}},
		"non numeric":        {"abc_x.sql": {Data: []byte("")}},
		"zero version":       {"000_x.sql": {Data: []byte("")}},
		"duplicate":          {"001_a.sql": {Data: []byte("")}, "1_b.sql": {Data: []byte("")}},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(setupTestDB(t), fsys).Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);")},
		"002_seed.sql":   {Data: []byte("INSERT INTO kv (key, value) VALUES ('a', '1');")},
	})

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	applied, err = runner.Apply()
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied %d migrations", applied)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !st.UpToDate() || st.Current != 2 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	})

	applied, err := runner.Apply()
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.CurrentVersion(); v != 1 {
		t.Errorf("version after failure = %d, want 1", v)
	}
}

func TestValidateRejectsNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE t (id INTEGER);")},
	})
	if _, err := runner.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}

	err := runner.Validate()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("Validate() = %v, want newer-than-supported error", err)
	}
}

func TestEmbeddedMigrationsApply(t *testing.T) {
	db := setupTestDB(t)
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}
	if _, err := NewRunner(db, sub).Apply(); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('k', 'v', 'now')"); err != nil {
		t.Errorf("kv table not usable after migrations: %v", err)
	}
}
