// Package storagetest holds the behavior every storage.Provider must share.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/agenda/internal/storage"
)

// Factory returns a provider that has been initialized and is ready for use.
type Factory func(t *testing.T) storage.Provider

// Run exercises get/set/delete/keys and atomic updates against providers from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("get absent key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get("data_2024-06-10")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get() = %q, %v; want absent", v, ok)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set("notes_2024-06-10", `"first"`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := s.Set("notes_2024-06-10", `"second"`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok, err := s.Get("notes_2024-06-10")
		if err != nil || !ok {
			t.Fatalf("Get() = %q, %v, %v", v, ok, err)
		}
		if v != `"second"` {
			t.Errorf("Get() = %q, want second value", v)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		_ = s.Set("agendaSettings", `{}`)
		if err := s.Delete("agendaSettings"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := s.Get("agendaSettings"); ok {
			t.Error("key still present after Delete")
		}
		if err := s.Delete("never-set"); err != nil {
			t.Errorf("Delete(absent) error = %v", err)
		}
	})

	t.Run("keys by prefix", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"tasks_w_2024-W24", "tasks_2024-06-11", "tasks_2024-06-10", "data_2024-06-10", "tasksX"} {
			if err := s.Set(k, `[""]`); err != nil {
				t.Fatalf("Set(%s) error = %v", k, err)
			}
		}
		got, err := s.Keys("tasks_")
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"tasks_2024-06-10", "tasks_2024-06-11", "tasks_w_2024-W24"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Keys(tasks_) = %v, want %v", got, want)
		}

		all, err := s.Keys("")
		if err != nil {
			t.Fatalf("Keys(\"\") error = %v", err)
		}
		if len(all) != 5 {
			t.Errorf("Keys(\"\") returned %d keys, want 5", len(all))
		}
	})

	t.Run("atomic update commits", func(t *testing.T) {
		s := newStore(t)
		err := storage.Update(s, func(kv storage.KV) error {
			if err := kv.Set("a", "1"); err != nil {
				return err
			}
			v, ok, err := kv.Get("a")
			if err != nil || !ok || v != "1" {
				t.Errorf("read inside update = %q, %v, %v", v, ok, err)
			}
			return kv.Set("b", "2")
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		for k, want := range map[string]string{"a": "1", "b": "2"} {
			if v, _, _ := s.Get(k); v != want {
				t.Errorf("Get(%s) = %q, want %q", k, v, want)
			}
		}
	})

	t.Run("atomic update error is returned", func(t *testing.T) {
		s := newStore(t)
		boom := errors.New("boom")
		err := storage.Update(s, func(kv storage.KV) error {
			return boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("Update() error = %v, want boom", err)
		}
	})
}
