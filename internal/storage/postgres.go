package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/davidfults/vidmap/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
            id UUID PRIMARY KEY,
            loc VARCHAR(2048) UNIQUE NOT NULL,
            lastmod TIMESTAMP,
            changefreq VARCHAR(32),
            priority VARCHAR(8),
            video JSONB,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_entries_loc ON entries(loc)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_video ON entries USING GIN(video)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	query := `
        INSERT INTO entries (id, loc, lastmod, changefreq, priority, video, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (loc) DO UPDATE SET
            lastmod = EXCLUDED.lastmod,
            changefreq = EXCLUDED.changefreq,
            priority = EXCLUDED.priority,
            video = EXCLUDED.video,
            updated_at = CURRENT_TIMESTAMP
    `

	videoJSON, err := marshalVideo(entry.Video)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
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

func (s *PostgresStore) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        WHERE id = $1
    `

	return s.scanEntry(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) GetEntryByLoc(ctx context.Context, loc string) (*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        WHERE loc = $1
    `

	return s.scanEntry(s.db.QueryRowContext(ctx, query, loc))
}

func (s *PostgresStore) ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	query := `
        SELECT id, loc, lastmod, changefreq, priority, video, created_at, updated_at
        FROM entries
        ORDER BY loc
        LIMIT $1 OFFSET $2
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

func (s *PostgresStore) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	return count, err
}

func (s *PostgresStore) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) scanEntry(row *sql.Row) (*models.Entry, error) {
	entry, err := scanEntryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}
