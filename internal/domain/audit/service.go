// Package audit keeps an append-only usage log of handled prompts in SQLite.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UsageService provides append-only usage logging.
// There are no update or delete operations.
type UsageService struct {
	db *sql.DB
}

// NewUsageService creates a usage service over a migrated database.
func NewUsageService(db *sql.DB) *UsageService {
	return &UsageService{db: db}
}

// Log stores a usage event. Missing ID and CreatedAt are filled in.
func (s *UsageService) Log(ctx context.Context, event *UsageEvent) error {
	if event.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("audit: generate id: %w", err)
		}
		event.ID = id.String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_event (id, provider, model, outcome, status_code, duration_ms, subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Provider,
		event.Model,
		string(event.Outcome),
		event.StatusCode,
		event.DurationMs,
		event.Subject,
		event.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("audit: insert usage event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first. limit is clamped to [1, MaxListLimit];
// non-positive values use DefaultListLimit.
func (s *UsageService) ListRecent(ctx context.Context, limit int) ([]*UsageEvent, error) {
	limit = clampLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, provider, model, outcome, status_code, duration_ms, subject, created_at
		FROM usage_event
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: list usage events: %w", err)
	}
	defer rows.Close()

	events := make([]*UsageEvent, 0, limit)
	for rows.Next() {
		var (
			e         UsageEvent
			outcome   string
			subject   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Provider, &e.Model, &outcome, &e.StatusCode, &e.DurationMs, &subject, &createdAt); err != nil {
			return nil, fmt.Errorf("audit: scan usage event: %w", err)
		}
		e.Outcome = Outcome(outcome)
		if subject.Valid {
			e.Subject = &subject.String
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("audit: parse created_at %q: %w", createdAt, err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// CountByOutcome returns how many events were logged per outcome.
func (s *UsageService) CountByOutcome(ctx context.Context) (map[Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM usage_event GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("audit: count usage events: %w", err)
	}
	defer rows.Close()

	out := map[Outcome]int{}
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("audit: scan count: %w", err)
		}
		out[Outcome(outcome)] = n
	}
	return out, rows.Err()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
