package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidfults/vidmap/internal/models"
)

type Store interface {
	Initialize() error
	Close() error

	// Entry operations
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	GetEntryByLoc(ctx context.Context, loc string) (*models.Entry, error)
	ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	CountEntries(ctx context.Context) (int, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}
