// Package export dumps the whole key namespace to a portable JSON or YAML
// snapshot and loads it back.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/storage"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Snapshot is the exported document.
type Snapshot struct {
	ID         string    `json:"id" yaml:"id"`
	App        string    `json:"app" yaml:"app"`
	Version    string    `json:"version" yaml:"version"`
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	Entries    []Entry   `json:"entries" yaml:"entries"`
}

// Entry is one stored key. Value holds the decoded JSON document; a stored
// value that is not valid JSON is carried verbatim in Raw instead.
type Entry struct {
	Key   string      `json:"key" yaml:"key"`
	Value interface{} `json:"value" yaml:"value"`
	Raw   string      `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Dump reads every key of p into a snapshot encoded as format.
func Dump(p storage.Provider, format Format) ([]byte, error) {
	snap, err := Take(p)
	if err != nil {
		return nil, err
	}
	return Encode(snap, format)
}

// Take reads every key of p, in key order.
func Take(p storage.Provider) (Snapshot, error) {
	all, err := p.Keys("")
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list keys: %w", err)
	}

	snap := Snapshot{
		ID:         uuid.NewString(),
		App:        constants.AppName,
		Version:    constants.Version,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Entries:    make([]Entry, 0, len(all)),
	}
	for _, key := range all {
		raw, ok, err := p.Get(key)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		entry := Entry{Key: key}
		if err := json.Unmarshal([]byte(raw), &entry.Value); err != nil {
			logger.Warn("Exporting malformed value verbatim", "key", key, "error", err)
			entry.Value = nil
			entry.Raw = raw
		}
		snap.Entries = append(snap.Entries, entry)
	}
	return snap, nil
}

func Encode(snap Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(snap, "", "  ")
	case FormatYAML:
		return yaml.Marshal(snap)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func Decode(data []byte, format Format) (Snapshot, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &snap)
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		return Snapshot{}, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// Load writes every entry of the snapshot in data into p, overwriting keys
// that already exist, and returns the number of keys written.
func Load(p storage.Provider, data []byte, format Format) (int, error) {
	snap, err := Decode(data, format)
	if err != nil {
		return 0, err
	}

	values := make(map[string]string, len(snap.Entries))
	order := make([]string, 0, len(snap.Entries))
	for i, e := range snap.Entries {
		if e.Key == "" {
			return 0, fmt.Errorf("entry %d has no key", i)
		}
		value := e.Raw
		if value == "" {
			b, err := json.Marshal(normalize(e.Value))
			if err != nil {
				return 0, fmt.Errorf("failed to encode %s: %w", e.Key, err)
			}
			value = string(b)
		}
		if _, dup := values[e.Key]; !dup {
			order = append(order, e.Key)
		}
		values[e.Key] = value
	}

	err = storage.Update(p, func(kv storage.KV) error {
		for _, key := range order {
			if err := kv.Set(key, values[key]); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Info("Imported snapshot", "id", snap.ID, "keys", len(order))
	return len(order), nil
}

// normalize converts map[interface{}]interface{} values, which YAML can
// produce for non-string keys, into JSON-encodable maps.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
