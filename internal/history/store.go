// Package history provides durable storage for the parse audit log.
//
// Successful parses are recorded to a local SQLite database. Recording is a
// convenience for the CLI: the parser itself never touches the store, and a
// recording failure never fails a parse.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/veldt/cloudcmd/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for parse records.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Record is one successful parse.
type Record struct {
	ID              string // UUIDv7, time-ordered
	ParsedAt        time.Time
	Service         string
	Operation       string
	IsCustomization bool
	CommandHash     string // content address of the canonical IR JSON
	RawCommand      string
}

// Open creates or opens the history database at the given path.
// Applies required pragmas and the schema automatically; safe to call on an
// existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// RecordParse inserts a record for a parsed command and returns it.
// Duplicate hashes are fine: every invocation gets its own row.
func (s *Store) RecordParse(ctx context.Context, cmd *ir.Command, raw string) (*Record, error) {
	hash, err := ir.Hash(cmd)
	if err != nil {
		return nil, fmt.Errorf("record parse: %w", err)
	}

	rec := &Record{
		ID:              uuid.Must(uuid.NewV7()).String(),
		ParsedAt:        time.Now().UTC(),
		Service:         cmd.ServiceName(),
		Operation:       cmd.OperationName(),
		IsCustomization: cmd.IsCustomization(),
		CommandHash:     hash,
		RawCommand:      raw,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO parses
		(id, parsed_at, service, operation, is_customization, command_hash, raw_command)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.ParsedAt.Format(time.RFC3339Nano),
		rec.Service,
		rec.Operation,
		rec.IsCustomization,
		rec.CommandHash,
		rec.RawCommand,
	)
	if err != nil {
		return nil, fmt.Errorf("record parse: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parsed_at, service, operation, is_customization, command_hash, raw_command
		FROM parses
		ORDER BY parsed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var parsedAt string
		if err := rows.Scan(&rec.ID, &parsedAt, &rec.Service, &rec.Operation,
			&rec.IsCustomization, &rec.CommandHash, &rec.RawCommand); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.ParsedAt, err = time.Parse(time.RFC3339Nano, parsedAt)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return records, nil
}
