package export

import (
	"strings"
	"testing"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/repository"
	"github.com/julianstephens/agenda/internal/storage"
)

func seededRepo(t *testing.T) (*repository.Repository, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	repo := repository.New(store)
	_ = repo.MergeSlot("2024-06-10", "09:00", models.SetText("Standup").Merge(models.SetImportant(true)))
	_ = repo.MergeSlot("2024-06-10", "10:00", models.SetDeleted(true))
	_, _ = repo.AppendOrEditTask(keys.TasksKey("2024-06-10"), 0, "Buy milk")
	_ = repo.WriteMeal("2024-06-10", constants.MealLunch, "Salad")
	_ = repo.WriteNotes(keys.NotesKey("2024-06-10"), "")
	_ = repo.WriteNotes(keys.WeekNotesKey("2024-W24"), "weekly: 3 goals")
	s := models.DefaultSettings()
	s.Interval = 30
	_, _ = repo.SaveSettings(s)
	return repo, store
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if FormatForPath("backup.YML") != FormatYAML || FormatForPath("dump") != FormatJSON {
		t.Error("FormatForPath picked the wrong format")
	}
}

func TestDumpAndLoad(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			_, src := seededRepo(t)
			data, err := Dump(src, format)
			if err != nil {
				t.Fatalf("Dump() error = %v", err)
			}

			dst := storage.NewMemoryStore()
			_ = dst.Init()
			n, err := Load(dst, data, format)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			srcKeys, _ := src.Keys("")
			if n != len(srcKeys) {
				t.Errorf("Load() wrote %d keys, want %d", n, len(srcKeys))
			}

			repo := repository.New(dst)
			slot := repo.ReadSlot("2024-06-10", "09:00")
			if slot.Text != "Standup" || !slot.Important {
				t.Errorf("slot = %+v", slot)
			}
			if !repo.ReadSlot("2024-06-10", "10:00").Deleted {
				t.Error("tombstone lost")
			}
			if items := repo.ReadTasks(keys.TasksKey("2024-06-10")).Items(); len(items) != 1 || items[0] != "Buy milk" {
				t.Errorf("tasks = %q", items)
			}
			if repo.ReadMeals("2024-06-10")[constants.MealLunch] != "Salad" {
				t.Error("meal lost")
			}
			if got := repo.ReadNotes(keys.WeekNotesKey("2024-W24")); got != "weekly: 3 goals" {
				t.Errorf("week notes = %q", got)
			}
			if v, ok, _ := dst.Get(keys.NotesKey("2024-06-10")); !ok || v != `""` {
				t.Errorf("empty notes = %q, %v", v, ok)
			}
			if repo.LoadSettings().Interval != 30 {
				t.Error("settings lost")
			}
		})
	}
}

func TestMalformedValuesRoundTripVerbatim(t *testing.T) {
	src := storage.NewMemoryStore()
	_ = src.Init()
	_ = src.Set("data_2024-06-10", "{broken")

	data, err := Dump(src, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "raw:") {
		t.Errorf("malformed value not exported as raw:\n%s", data)
	}

	dst := storage.NewMemoryStore()
	_ = dst.Init()
	if _, err := Load(dst, data, FormatYAML); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := dst.Get("data_2024-06-10"); v != "{broken" {
		t.Errorf("raw value = %q", v)
	}
}

func TestSnapshotMetadata(t *testing.T) {
	_, src := seededRepo(t)
	a, _ := Take(src)
	b, _ := Take(src)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("snapshot ids = %q, %q", a.ID, b.ID)
	}
	if a.App != constants.AppName {
		t.Errorf("App = %q", a.App)
	}
	for i := 1; i < len(a.Entries); i++ {
		if a.Entries[i-1].Key >= a.Entries[i].Key {
			t.Errorf("entries not sorted at %d", i)
		}
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dst := storage.NewMemoryStore()
	_ = dst.Init()

	if _, err := Load(dst, []byte("{"), FormatJSON); err == nil {
		t.Error("expected decode error")
	}
	if _, err := Load(dst, []byte(`{"entries":[{"value":1}]}`), FormatJSON); err == nil {
		t.Error("expected error for entry without key")
	}
	if keys, _ := dst.Keys(""); len(keys) != 0 {
		t.Errorf("failed loads wrote keys: %v", keys)
	}
}
