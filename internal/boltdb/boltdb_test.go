package boltdb

import (
	"path/filepath"
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbriolat/video-fetcher/internal/history"
)

func TestStore(t *testing.T) {
	assert := assert_.New(t)
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := New(path)
	require.NoError(t, err)

	first := &history.Record{VideoID: "aaaaaaaaaaa", Title: "One", Status: history.StatusComplete, AddedAt: time.Now().Add(-time.Minute)}
	second := &history.Record{VideoID: "bbbbbbbbbbb", Title: "Two", Status: history.StatusFailed, Error: "download failed: timeout", AddedAt: time.Now()}
	assert.NoError(store.Add(first))
	assert.NoError(store.Add(second))
	assert.NotEmpty(first.ID)
	require.NoError(t, store.Close())

	// Records survive reopening
	store, err = New(path)
	require.NoError(t, err)
	defer store.Close()
	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal("Two", records[0].Title)
	assert.Equal(history.StatusFailed, records[0].Status)
	assert.Equal(first.ID, records[1].ID)
}

func TestStoreInUse(t *testing.T) {
	assert := assert_.New(t)
	path := filepath.Join(t.TempDir(), "history.db")
	timeout := OpenTimeout
	OpenTimeout = 100 * time.Millisecond
	defer func() { OpenTimeout = timeout }()

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(&history.Record{VideoID: "aaaaaaaaaaa", Title: "One", AddedAt: time.Now()}))

	start := time.Now()
	_, err = New(path)
	assert.ErrorIs(err, ErrInUse)
	_, err = NewReadOnly(path)
	assert.ErrorIs(err, ErrInUse)
	assert.Less(time.Since(start), 5*time.Second)

	require.NoError(t, store.Close())
	reader, err := NewReadOnly(path)
	require.NoError(t, err)
	defer reader.Close()
	records, err := reader.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal("One", records[0].Title)
	assert.Error(reader.Add(&history.Record{VideoID: "bbbbbbbbbbb"}), "read-only store rejects writes")
}

func TestReadOnlyMissingFile(t *testing.T) {
	assert := assert_.New(t)

	store, err := NewReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	require.NoError(t, err)
	records, err := store.List()
	assert.NoError(err)
	assert.Empty(records)
}
