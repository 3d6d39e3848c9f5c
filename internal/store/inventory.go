package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FetchRecord describes one downloaded cache file.
type FetchRecord struct {
	// ID is a UUID assigned when the record is written.
	ID string

	// SurveyYear, Horizon, Survey, and State identify the dataset.
	SurveyYear int
	Horizon    string
	Survey     string
	State      string

	// SourceURL is the archive the file was extracted from.
	SourceURL string

	// LocalPath is where the extracted CSV lives.
	LocalPath string

	// SizeBytes is the extracted file size.
	SizeBytes int64

	// FetchedAt is when the download completed.
	FetchedAt time.Time
}

// RecordFetch upserts an inventory row. The (year, horizon, survey, state)
// tuple is unique; re-recording the same dataset replaces the previous row,
// matching the idempotent overwrite semantics of the cache itself. A zero
// ID or FetchedAt is filled in before writing.
func (s *Store) RecordFetch(ctx context.Context, rec FetchRecord) (FetchRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetches
		(id, survey_year, horizon, survey, state, source_url, local_path, size_bytes, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(survey_year, horizon, survey, state) DO UPDATE SET
			id         = excluded.id,
			source_url = excluded.source_url,
			local_path = excluded.local_path,
			size_bytes = excluded.size_bytes,
			fetched_at = excluded.fetched_at
	`,
		rec.ID,
		rec.SurveyYear,
		rec.Horizon,
		rec.Survey,
		rec.State,
		rec.SourceURL,
		rec.LocalPath,
		rec.SizeBytes,
		rec.FetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return FetchRecord{}, fmt.Errorf("record fetch: %w", err)
	}

	return rec, nil
}

// ListFetches returns every inventory row, oldest first.
func (s *Store) ListFetches(ctx context.Context) ([]FetchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_year, horizon, survey, state, source_url, local_path, size_bytes, fetched_at
		FROM fetches
		ORDER BY fetched_at, state
	`)
	if err != nil {
		return nil, fmt.Errorf("list fetches: %w", err)
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var fetchedAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.SurveyYear,
			&rec.Horizon,
			&rec.Survey,
			&rec.State,
			&rec.SourceURL,
			&rec.LocalPath,
			&rec.SizeBytes,
			&fetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fetch row: %w", err)
		}
		rec.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
