package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexmerricks0/ai-pulse/internal/model"
)

type BriefingRepository struct {
	db *sql.DB
}

func NewBriefingRepository(db *sql.DB) *BriefingRepository {
	return &BriefingRepository{db: db}
}

func (r *BriefingRepository) FindByDate(date string) (*model.BriefingRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, date, briefing, model, tokens_used, created_at
		FROM daily_briefings
		WHERE date = $1
	`, date)
	return scanRecord(row)
}

func (r *BriefingRepository) FindLatest() (*model.BriefingRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, date, briefing, model, tokens_used, created_at
		FROM daily_briefings
		ORDER BY date DESC
		LIMIT 1
	`)
	return scanRecord(row)
}

// FindRange returns summary projections for all briefings on or after
// since, newest first. Counts are derived from the stored briefing
// payload at read time.
func (r *BriefingRepository) FindRange(since string) ([]model.BriefingSummary, error) {
	rows, err := r.db.Query(`
		SELECT date, briefing
		FROM daily_briefings
		WHERE date >= $1
		ORDER BY date DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.BriefingSummary
	for rows.Next() {
		var date string
		var briefingJSON []byte
		if err := rows.Scan(&date, &briefingJSON); err != nil {
			return nil, err
		}

		var briefing model.BriefingResult
		if err := json.Unmarshal(briefingJSON, &briefing); err != nil {
			return nil, fmt.Errorf("corrupt briefing for %s: %w", date, err)
		}

		summaries = append(summaries, model.BriefingSummary{
			Date:       date,
			Headline:   briefing.Headline,
			Trend:      briefing.Trend,
			StoryCount: len(briefing.Stories),
			PaperCount: len(briefing.Papers),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// InsertIfAbsent writes the record unless a row for the same date already
// exists. The unique constraint on date is the source of correctness; the
// caller's pre-check is only a short-circuit. Returns false when the row
// was already there.
func (r *BriefingRepository) InsertIfAbsent(record *model.BriefingRecord) (bool, error) {
	briefingJSON, err := json.Marshal(record.Briefing)
	if err != nil {
		return false, err
	}

	// lib/pq sends []byte as bytea, which does not coerce to jsonb.
	res, err := r.db.Exec(`
		INSERT INTO daily_briefings(date, sources_data, briefing, model, tokens_used)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO NOTHING
	`, record.Date, string(record.SourcesSnapshot), string(briefingJSON), record.Model, record.TokensUsed)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanRecord(row *sql.Row) (*model.BriefingRecord, error) {
	var rec model.BriefingRecord
	var briefingJSON []byte

	err := row.Scan(&rec.ID, &rec.Date, &briefingJSON, &rec.Model, &rec.TokensUsed, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(briefingJSON, &rec.Briefing); err != nil {
		return nil, fmt.Errorf("corrupt briefing for %s: %w", rec.Date, err)
	}

	return &rec, nil
}
