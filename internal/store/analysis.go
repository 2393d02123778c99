package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisRecord is a saved exam analysis.
type AnalysisRecord struct {
	ID           string
	CreatedAt    time.Time
	OverallScore float64
	WeakPoints   []string
	PageCount    int
	Report       json.RawMessage
}

// SaveAnalysis stores an analysis record.
func (s *Store) SaveAnalysis(ctx context.Context, rec AnalysisRecord) error {
	weakPoints, err := json.Marshal(rec.WeakPoints)
	if err != nil {
		return fmt.Errorf("marshal weak points: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, created_at, overall_score, weak_points, page_count, report)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, createdAt, rec.OverallScore, string(weakPoints), rec.PageCount, string(rec.Report),
	)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns an analysis by ID, or nil if not found.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, overall_score, weak_points, page_count, report FROM analyses WHERE id = ?`, id)
	rec, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyses returns saved analyses, newest first. Limit 0 means all.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	query := `SELECT id, created_at, overall_score, weak_points, page_count, report FROM analyses ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanAnalysis(row interface{ Scan(...any) error }) (AnalysisRecord, error) {
	var rec AnalysisRecord
	var weakPoints, report string
	err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.OverallScore, &weakPoints, &rec.PageCount, &report)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(weakPoints), &rec.WeakPoints); err != nil {
		return rec, fmt.Errorf("decode weak points: %w", err)
	}
	rec.Report = json.RawMessage(report)
	return rec, nil
}
