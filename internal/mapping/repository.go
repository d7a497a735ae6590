package mapping

import (
	"database/sql"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Record upserts one entry keyed by processed-artifact-name. At most one row
// exists per name; re-recording replaces it (last write wins).
func (r *Repository) Record(e *Entry) error {
	query := `INSERT INTO mapping_entries (processed_name, original_name, source_url, kind, recorded_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT(processed_name) DO UPDATE SET
			      original_name = excluded.original_name,
			      source_url = excluded.source_url,
			      kind = excluded.kind,
			      recorded_at = excluded.recorded_at`

	_, err := r.db.Exec(query,
		e.ProcessedName,
		e.OriginalName,
		e.SourceURL,
		e.Kind,
		e.RecordedAt,
	)
	return err
}

func (r *Repository) Lookup(processedName string) (*Entry, error) {
	query := `SELECT processed_name, original_name, source_url, kind, recorded_at
			  FROM mapping_entries WHERE processed_name = $1`

	e := &Entry{}
	err := r.db.QueryRow(query, processedName).Scan(
		&e.ProcessedName,
		&e.OriginalName,
		&e.SourceURL,
		&e.Kind,
		&e.RecordedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
