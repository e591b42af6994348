package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidfults/vidmap/internal/models"
	"github.com/davidfults/vidmap/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })

	return store
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func testEntry(loc string) *models.Entry {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Entry{
		ID:        uuid.New(),
		Loc:       loc,
		Priority:  "0.8",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteStore_EntryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := testEntry("http://example.com/watch/1")
	entry.Video = &models.VideoMeta{
		ContentLoc: strPtr("http://example.com/video.flv"),
		Title:      strPtr("Grilling steaks for summer"),
		Duration:   intPtr(600),
		Tags:       []string{"steak", "summer"},
	}

	require.NoError(t, store.CreateEntry(ctx, entry))

	got, err := store.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Loc, got.Loc)
	assert.Equal(t, "0.8", got.Priority)

	require.NotNil(t, got.Video)
	require.NotNil(t, got.Video.ContentLoc)
	assert.Equal(t, "http://example.com/video.flv", *got.Video.ContentLoc)
	require.NotNil(t, got.Video.Duration)
	assert.Equal(t, 600, *got.Video.Duration)
	assert.Equal(t, []string{"steak", "summer"}, got.Video.Tags)
	assert.Nil(t, got.Video.PlayerLoc, "unset fields come back nil")
}

func TestSQLiteStore_EntryWithoutVideo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := testEntry("http://example.com/plain")
	require.NoError(t, store.CreateEntry(ctx, entry))

	got, err := store.GetEntryByLoc(ctx, "http://example.com/plain")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Video)
}

func TestSQLiteStore_UpsertOnLoc(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testEntry("http://example.com/watch/1")
	require.NoError(t, store.CreateEntry(ctx, first))

	second := testEntry("http://example.com/watch/1")
	second.Video = &models.VideoMeta{ContentLoc: strPtr("http://example.com/video.flv")}
	require.NoError(t, store.CreateEntry(ctx, second))

	count, err := store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "same loc must update, not duplicate")

	got, err := store.GetEntryByLoc(ctx, "http://example.com/watch/1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Video)
}

func TestSQLiteStore_ListOrderedByLoc(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEntry(ctx, testEntry("http://example.com/b")))
	require.NoError(t, store.CreateEntry(ctx, testEntry("http://example.com/a")))
	require.NoError(t, store.CreateEntry(ctx, testEntry("http://example.com/c")))

	entries, err := store.ListEntries(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "http://example.com/a", entries[0].Loc)
	assert.Equal(t, "http://example.com/c", entries[2].Loc)

	paged, err := store.ListEntries(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "http://example.com/b", paged[0].Loc)
}

func TestSQLiteStore_GetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetEntry(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetEntryByLoc(ctx, "http://example.com/nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_DeleteEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := testEntry("http://example.com/watch/1")
	require.NoError(t, store.CreateEntry(ctx, entry))
	require.NoError(t, store.DeleteEntry(ctx, entry.ID))

	count, err := store.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
