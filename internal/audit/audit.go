// Package audit appends a JSONL trail of every Tool Surface (C3) call made
// through cmd/migrator next to the migration database, independent of the in-store write_log table
// (internal/store/sqlite/schema.go) that backs within-store observability.
// Grounded on the teacher's internal/audit package: an append-only JSONL
// file, one JSON object per line, html-escaping disabled so the log stays
// diffable.
package audit

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the tool-call audit log's file name, stored alongside the
// migration database.
const FileName = "tool-calls.jsonl"

const idPrefix = "call-"

// Entry is one recorded Tool Surface invocation.
type Entry struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Actor       string    `json:"actor,omitempty"`
	Operation   string    `json:"operation"`
	MigrationID string    `json:"migration_id,omitempty"`
	Args        any       `json:"args,omitempty"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// Path returns the audit log path for a migration database at dbPath.
func Path(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), FileName)
}

// EnsureFile creates the audit log file (and its directory) if absent.
func EnsureFile(dbPath string) (string, error) {
	p := Path(dbPath)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		return "", fmt.Errorf("create audit log directory: %w", err)
	}
	if _, err := os.Stat(p); err == nil {
		return p, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat tool-call audit log: %w", err)
	}
	// nolint:gosec // JSONL is intended to be inspected alongside the database.
	if err := os.WriteFile(p, []byte{}, 0644); err != nil {
		return "", fmt.Errorf("create tool-call audit log: %w", err)
	}
	return p, nil
}

// Append appends e to the audit log next to dbPath as a single JSON line.
func Append(dbPath string, e *Entry) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil entry")
	}
	if e.Operation == "" {
		return "", fmt.Errorf("operation is required")
	}

	p, err := EnsureFile(dbPath)
	if err != nil {
		return "", err
	}

	if e.ID == "" {
		e.ID, err = newID()
		if err != nil {
			return "", err
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	} else {
		e.CreatedAt = e.CreatedAt.UTC()
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // nolint:gosec // intended permissions
	if err != nil {
		return "", fmt.Errorf("open tool-call audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return "", fmt.Errorf("write tool-call audit log entry: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flush tool-call audit log: %w", err)
	}

	return e.ID, nil
}

func newID() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return idPrefix + hex.EncodeToString(b[:]), nil
}
