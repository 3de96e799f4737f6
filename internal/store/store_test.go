package store

import (
	"testing"

	"github.com/mishcd/astrocusp/internal/config"
)

func TestInit(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer db.Close()

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Reopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	db.Close()

	// Re-running migrations against an existing file is a no-op.
	db, err = Init(dir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer db.Close()

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatal(err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version after reopen = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestConfigurePool(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ConfigurePool(db, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
	ConfigurePool(db, nil) // must not panic
}
