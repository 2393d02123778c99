package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMEventData is the payload recorded for a single LLM request.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored event row.
type LLMEvent struct {
	ID        int64
	CreatedAt time.Time
	LLMEventData
}

// LLMEventQuery filters QueryLLMEvents. Zero values mean no filtering.
type LLMEventQuery struct {
	Purpose    string
	Model      string
	FailedOnly bool
	Limit      int
}

// UsageRow aggregates token usage grouped by a key (purpose or model).
type UsageRow struct {
	Key          string
	Events       int
	InputTokens  int64
	OutputTokens int64
}

// AppendLLMEvent records an LLM request event.
func (s *Store) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_events (created_at, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

const llmEventColumns = `id, created_at, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body`

func scanLLMEvent(row interface{ Scan(...any) error }) (LLMEvent, error) {
	var e LLMEvent
	err := row.Scan(
		&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	return e, err
}

// QueryLLMEvents returns events matching the query, newest first.
func (s *Store) QueryLLMEvents(ctx context.Context, q LLMEventQuery) ([]LLMEvent, error) {
	query := `SELECT ` + llmEventColumns + ` FROM llm_events WHERE 1=1`
	var args []any
	if q.Purpose != "" {
		query += ` AND purpose = ?`
		args = append(args, q.Purpose)
	}
	if q.Model != "" {
		query += ` AND model = ?`
		args = append(args, q.Model)
	}
	if q.FailedOnly {
		query += ` AND success = 0`
	}
	query += ` ORDER BY id DESC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns a single event by ID, or nil if not found.
func (s *Store) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+llmEventColumns+` FROM llm_events WHERE id = ?`, id)
	e, err := scanLLMEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LLMUsageByPurpose aggregates event counts and tokens per purpose.
func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]UsageRow, error) {
	return s.llmUsage(ctx, "purpose")
}

// LLMUsageByModel aggregates event counts and tokens per model.
func (s *Store) LLMUsageByModel(ctx context.Context) ([]UsageRow, error) {
	return s.llmUsage(ctx, "model")
}

func (s *Store) llmUsage(ctx context.Context, group string) ([]UsageRow, error) {
	// group is a fixed column name chosen by the callers above.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+group+`, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		 FROM llm_events GROUP BY `+group+` ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var r UsageRow
		if err := rows.Scan(&r.Key, &r.Events, &r.InputTokens, &r.OutputTokens); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
