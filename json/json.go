// Package json persists run records as versioned JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/studio"
)

const version = 1

// envelope is the v1 wire format for a persisted run record.
type envelope struct {
	Version    int        `json:"version"`
	Brief      briefDTO   `json:"brief"`
	Outcome    string     `json:"outcome"`
	Content    string     `json:"content,omitempty"`
	Message    string     `json:"message,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	Log        []entryDTO `json:"log"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

type briefDTO struct {
	Topic          string `json:"topic"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
	Keywords       string `json:"keywords"`
	SessionID      string `json:"session_id,omitempty"`
}

// entryDTO is a progress entry with a type discriminator.
type entryDTO struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Author  string `json:"author,omitempty"`
	Preview string `json:"preview,omitempty"`
}

// MarshalRecord serializes a Record to JSON in v1 envelope format.
func MarshalRecord(r studio.Record) ([]byte, error) {
	env := envelope{
		Version: version,
		Brief: briefDTO{
			Topic:          r.Brief.Topic,
			TargetAudience: r.Brief.TargetAudience,
			Tone:           r.Brief.Tone,
			Keywords:       r.Brief.Keywords,
			SessionID:      r.Brief.SessionID,
		},
		Outcome:    r.State.Outcome.String(),
		Content:    r.State.Content,
		Message:    r.State.Message,
		SessionID:  r.State.SessionID,
		Log:        make([]entryDTO, len(r.State.Log)),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for i, e := range r.State.Log {
		switch e.Kind {
		case studio.EntryStatus:
			env.Log[i] = entryDTO{Type: "status", Message: e.Message}
		case studio.EntryActivity:
			env.Log[i] = entryDTO{Type: "activity", Author: e.Author, Preview: e.Preview}
		default:
			return nil, fmt.Errorf("log entry %d: unknown kind %d", i, e.Kind)
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalRecord deserializes a Record from JSON in v1 envelope format.
func UnmarshalRecord(data []byte) (studio.Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return studio.Record{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return studio.Record{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	outcome, err := parseOutcome(env.Outcome)
	if err != nil {
		return studio.Record{}, err
	}
	var log []studio.ProgressEntry
	for i, dto := range env.Log {
		switch dto.Type {
		case "status":
			log = append(log, studio.ProgressEntry{Kind: studio.EntryStatus, Message: dto.Message})
		case "activity":
			log = append(log, studio.ProgressEntry{Kind: studio.EntryActivity, Author: dto.Author, Preview: dto.Preview})
		default:
			return studio.Record{}, fmt.Errorf("log entry %d: unknown type %q", i, dto.Type)
		}
	}
	return studio.Record{
		Brief: studio.Brief{
			Topic:          env.Brief.Topic,
			TargetAudience: env.Brief.TargetAudience,
			Tone:           env.Brief.Tone,
			Keywords:       env.Brief.Keywords,
			SessionID:      env.Brief.SessionID,
		},
		State: studio.State{
			Log:       log,
			Outcome:   outcome,
			Content:   env.Content,
			Message:   env.Message,
			SessionID: env.SessionID,
		},
		StartedAt:  env.StartedAt,
		FinishedAt: env.FinishedAt,
	}, nil
}

func parseOutcome(s string) (studio.Outcome, error) {
	for _, o := range []studio.Outcome{
		studio.OutcomeRunning,
		studio.OutcomeCompleted,
		studio.OutcomeFailed,
		studio.OutcomeClosed,
	} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome: %q", s)
}

// Save writes a Record to a JSON file, creating parent directories as needed.
// The file is replaced atomically.
func Save(path string, r studio.Record) error {
	data, err := MarshalRecord(r)
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
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Record from a JSON file.
func Load(path string) (studio.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return studio.Record{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalRecord(data)
}
