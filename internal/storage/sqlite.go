package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/davidfults/vidmap/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
            id TEXT PRIMARY KEY,
            loc TEXT UNIQUE NOT NULL,
            lastmod DATETIME,
            changefreq TEXT,
            priority TEXT,
            video TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_entries_loc ON entries(loc)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	query := `
        INSERT INTO entries (id, loc, lastmod, changefreq, priority, video, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(loc) DO UPDATE SET
            lastmod = excluded.lastmod,
            changefreq = excluded.changefreq,
            priority = excluded.priority,
            video = excluded.video,
            updated_at = CURRENT_TIMESTAMP
    `

	videoJSON, err := marshalVideo(entry.Video)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.Loc,
		entry.LastMod,
		entry.ChangeFreq,
		entry.Priority,
		videoJSON,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        WHERE id = ?
    `

	return s.scanEntry(s.db.QueryRowContext(ctx, query, id.String()))
}

func (s *SQLiteStore) GetEntryByLoc(ctx context.Context, loc string) (*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        WHERE loc = ?
    `

	return s.scanEntry(s.db.QueryRowContext(ctx, query, loc))
}

func (s *SQLiteStore) ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        ORDER BY loc
        LIMIT ? OFFSET ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id.String())
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) scanEntry(row *sql.Row) (*models.Entry, error) {
	entry, err := scanEntryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntryRow(row rowScanner) (*models.Entry, error) {
	entry := &models.Entry{}
	var lastMod sql.NullTime
	var videoJSON sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.Loc,
		&lastMod,
		&entry.ChangeFreq,
		&entry.Priority,
		&videoJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastMod.Valid {
		entry.LastMod = &lastMod.Time
	}
	if videoJSON.Valid && videoJSON.String != "" {
		video := &models.VideoMeta{}
		if err := json.Unmarshal([]byte(videoJSON.String), video); err != nil {
			return nil, fmt.Errorf("error decoding video column for %s: %w", entry.Loc, err)
		}
		entry.Video = video
	}

	return entry, nil
}

func marshalVideo(video *models.VideoMeta) (interface{}, error) {
	if video == nil {
		return nil, nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return nil, fmt.Errorf("error encoding video column: %w", err)
	}
	return string(videoJSON), nil
}
