package mapping

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Mirrors files/migrations/000001_create_mapping_entries.up.sql
	_, err = db.Exec(`CREATE TABLE mapping_entries (
		processed_name TEXT PRIMARY KEY,
		original_name TEXT NOT NULL,
		source_url TEXT NOT NULL,
		kind TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	)`)
	assert.NoError(t, err)

	return db
}

func TestRecord_ShouldPersistEntry(t *testing.T) {
	// given
	repo := NewRepository(newTestDB(t))
	entry := &Entry{
		ProcessedName: "20240102_000000_cccc3333.jpg",
		OriginalName:  "shot.cr2",
		SourceURL:     "https://bucket.s3.amazonaws.com/raw/20240102_000000_cccc3333.cr2",
		Kind:          "raw",
		RecordedAt:    1704153600,
	}

	// when
	err := repo.Record(entry)

	// then
	assert.NoError(t, err)
	found, err := repo.Lookup(entry.ProcessedName)
	assert.NoError(t, err)
	assert.Equal(t, entry, found)
}

func TestRecord_ShouldApplyLastWriteWins(t *testing.T) {
	// given
	repo := NewRepository(newTestDB(t))
	name := "20240102_000000_cccc3333.jpg"

	assert.NoError(t, repo.Record(&Entry{
		ProcessedName: name,
		OriginalName:  "first.cr2",
		SourceURL:     "https://bucket.s3.amazonaws.com/raw/first.cr2",
		Kind:          "raw",
		RecordedAt:    1,
	}))

	// when
	assert.NoError(t, repo.Record(&Entry{
		ProcessedName: name,
		OriginalName:  "second.cr2",
		SourceURL:     "https://bucket.s3.amazonaws.com/raw/second.cr2",
		Kind:          "raw",
		RecordedAt:    2,
	}))

	// then
	found, err := repo.Lookup(name)
	assert.NoError(t, err)
	assert.Equal(t, "second.cr2", found.OriginalName)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/raw/second.cr2", found.SourceURL)
	assert.Equal(t, int64(2), found.RecordedAt)
}

func TestRecord_ShouldKeepDistinctKeysSeparate(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		assert.NoError(t, repo.Record(&Entry{
			ProcessedName: name,
			OriginalName:  name,
			SourceURL:     "https://bucket.s3.amazonaws.com/uploads/" + name,
			Kind:          "regular",
		}))
	}

	found, err := repo.Lookup("b.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/uploads/b.jpg", found.SourceURL)
}

func TestLookup_ShouldReturnNotFoundForUnrecordedKey(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.Lookup("never-recorded.jpg")

	assert.ErrorIs(t, err, ErrNotFound)
}
