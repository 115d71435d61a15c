// Package json persists econstats sessions as versioned JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/econstats/econstats"
)

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version   int        `json:"version"`
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Queries   []queryDTO `json:"queries"`
}

type queryDTO struct {
	Query   string    `json:"query"`
	AskedAt time.Time `json:"asked_at"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s econstats.Session) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Queries:   make([]queryDTO, len(s.Queries)),
	}
	for i, q := range s.Queries {
		env.Queries[i] = queryDTO{Query: q.Query, AskedAt: q.AskedAt}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (econstats.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return econstats.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return econstats.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	var queries []econstats.QueryRecord
	if len(env.Queries) > 0 {
		queries = make([]econstats.QueryRecord, len(env.Queries))
		for i, q := range env.Queries {
			queries[i] = econstats.QueryRecord{Query: q.Query, AskedAt: q.AskedAt}
		}
	}
	return econstats.Session{
		ID:        env.ID,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Queries:   queries,
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as
// needed. The write goes through a temp file and rename so a crash never
// leaves a truncated session behind.
func Save(path string, s econstats.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (econstats.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return econstats.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}
