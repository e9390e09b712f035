package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/storage"
	"github.com/julianstephens/agenda/internal/storage/storagetest"
)

func newJSONStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "agenda.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return s
}

func TestJSONStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return newJSONStore(t)
	})
}

func TestJSONStorePersistsAcrossInstances(t *testing.T) {
	s := newJSONStore(t)
	if err := s.Set("notes_2024-06-10", `"remember"`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened := storage.NewJSONStore(s.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, ok, err := reopened.Get("notes_2024-06-10")
	if err != nil || !ok || v != `"remember"` {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); !errors.Is(err, apperrors.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if _, _, err := s.Get("x"); !errors.Is(err, apperrors.ErrNotLoaded) {
		t.Errorf("Get() before Load error = %v, want ErrNotLoaded", err)
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	s := newJSONStore(t)
	if err := storage.NewJSONStore(s.GetConfigPath()).Init(); err == nil {
		t.Error("expected error initializing an existing store")
	}
}

func TestJSONStoreCorruptFileIsNeverOverwritten(t *testing.T) {
	s := newJSONStore(t)
	if err := s.Set("data_2024-06-10", `{"09:00":{"text":"Standup"}}`); err != nil {
		t.Fatal(err)
	}
	good, err := os.ReadFile(s.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	// a truncated write leaves the table unreadable
	corrupt := good[:len(good)/2]
	if err := os.WriteFile(s.GetConfigPath(), corrupt, 0600); err != nil {
		t.Fatalf("failed to corrupt file: %v", err)
	}

	_, ok, err := s.Get("data_2024-06-10")
	if err != nil || ok {
		t.Fatalf("Get() on corrupt file = %v, %v; want absent without error", ok, err)
	}
	if _, err := s.Keys(""); err != nil {
		t.Errorf("Keys() on corrupt file error = %v", err)
	}

	if err := s.Set("notes_2024-06-10", `"x"`); !errors.Is(err, apperrors.ErrCorruptStorage) {
		t.Errorf("Set() on corrupt file error = %v, want ErrCorruptStorage", err)
	}
	if err := s.Delete("data_2024-06-10"); err != nil {
		t.Errorf("Delete() of an absent key error = %v", err)
	}
	if err := s.Verify(); !errors.Is(err, apperrors.ErrCorruptStorage) {
		t.Errorf("Verify() error = %v, want ErrCorruptStorage", err)
	}

	after, err := os.ReadFile(s.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(corrupt) {
		t.Error("corrupt file was rewritten")
	}
}

func TestJSONStoreVerifyHealthyFile(t *testing.T) {
	s := newJSONStore(t)
	_ = s.Set("a", "1")
	if err := s.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestJSONStoreReadOnlyDoesNotRewrite(t *testing.T) {
	s := newJSONStore(t)
	_ = s.Set("a", "1")
	before, err := os.Stat(s.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Keys(""); err != nil {
		t.Fatal(err)
	}
	_ = s.Set("a", "1")

	after, err := os.Stat(s.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("file rewritten by read-only or no-op operations")
	}
}
