package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/citeguard/citeguard/internal/model"
)

// SQLiteStore keeps the personal source library in a local SQLite database,
// one file per user, sources and their extracted full text side by side.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a library database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("library database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sources (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			authors_json TEXT,
			year         INTEGER,
			journal      TEXT,
			publisher    TEXT,
			has_file     INTEGER NOT NULL DEFAULT 0,
			created_at   TIMESTAMP,
			last_used    TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS contents (
			source_id TEXT PRIMARY KEY REFERENCES sources(id) ON DELETE CASCADE,
			full_text TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("init library schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FetchSourceContent returns the stored full text for one source.
func (s *SQLiteStore) FetchSourceContent(ctx context.Context, sourceID string) (*model.SourceContent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT s.title, COALESCE(c.full_text, '')
		FROM sources s
		LEFT JOIN contents c ON c.source_id = s.id
		WHERE s.id = ?
	`, sourceID)

	var title, fullText string
	if err := row.Scan(&title, &fullText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query source %s: %w", sourceID, err)
	}

	// Touch recency the way the original library keeps its ordering.
	_, _ = s.db.ExecContext(ctx,
		`UPDATE sources SET last_used = ? WHERE id = ?`,
		time.Now().UTC(), sourceID)

	return &model.SourceContent{
		SourceID: sourceID,
		Title:    title,
		FullText: fullText,
		Length:   len(fullText),
	}, nil
}

// ListSources returns all stored sources, most recently used first.
func (s *SQLiteStore) ListSources(ctx context.Context) ([]model.SourceSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(authors_json, ''), COALESCE(year, 0),
		       COALESCE(journal, ''), COALESCE(publisher, ''), has_file
		FROM sources
		ORDER BY last_used DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []model.SourceSummary
	for rows.Next() {
		var summary model.SourceSummary
		var authorsJSON string
		var hasFile int
		if err := rows.Scan(&summary.ID, &summary.Title, &authorsJSON,
			&summary.Year, &summary.Journal, &summary.Publisher, &hasFile); err != nil {
			return nil, fmt.Errorf("scan source row: %w", err)
		}
		if authorsJSON != "" {
			_ = json.Unmarshal([]byte(authorsJSON), &summary.Authors)
		}
		summary.HasFile = hasFile != 0
		sources = append(sources, summary)
	}
	return sources, rows.Err()
}

// AddSource stores a source and its full text. An existing source with the
// same id is replaced.
func (s *SQLiteStore) AddSource(ctx context.Context, summary model.SourceSummary, fullText string) error {
	authorsJSON, err := json.Marshal(summary.Authors)
	if err != nil {
		return fmt.Errorf("encode authors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add source: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	hasFile := 0
	if fullText != "" {
		hasFile = 1
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO sources
			(id, title, authors_json, year, journal, publisher, has_file, created_at, last_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, summary.ID, summary.Title, string(authorsJSON), summary.Year,
		summary.Journal, summary.Publisher, hasFile, now, now)
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}

	if fullText != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO contents (source_id, full_text) VALUES (?, ?)`,
			summary.ID, fullText)
		if err != nil {
			return fmt.Errorf("insert source content: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteSource removes a source and its content.
func (s *SQLiteStore) DeleteSource(ctx context.Context, sourceID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("delete source content: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, sourceID)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
