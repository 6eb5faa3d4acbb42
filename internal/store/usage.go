package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhisek/quizcraft/internal/usage"
)

// usageRepo keeps the counters in a single row. Costs are stored as
// decimal strings to avoid float rounding.
type usageRepo struct {
	db *sql.DB
}

func (r *usageRepo) LoadUsage(ctx context.Context) (usage.Stats, error) {
	var (
		s                     usage.Stats
		totalCost, sessionCost string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT total_tokens, total_cost, session_tokens, session_cost FROM usage_stats WHERE id = 1`,
	).Scan(&s.TotalTokens, &totalCost, &s.SessionTokens, &sessionCost)
	if errors.Is(err, sql.ErrNoRows) {
		return usage.Stats{TotalCost: decimal.Zero, SessionCost: decimal.Zero}, nil
	}
	if err != nil {
		return usage.Stats{}, fmt.Errorf("load usage stats: %w", err)
	}

	if s.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return usage.Stats{}, fmt.Errorf("parse total cost %q: %w", totalCost, err)
	}
	if s.SessionCost, err = decimal.NewFromString(sessionCost); err != nil {
		return usage.Stats{}, fmt.Errorf("parse session cost %q: %w", sessionCost, err)
	}
	return s, nil
}

func (r *usageRepo) SaveUsage(ctx context.Context, s usage.Stats) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_stats (id, total_tokens, total_cost, session_tokens, session_cost, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			total_tokens = excluded.total_tokens,
			total_cost = excluded.total_cost,
			session_tokens = excluded.session_tokens,
			session_cost = excluded.session_cost,
			updated_at = excluded.updated_at`,
		s.TotalTokens, s.TotalCost.String(), s.SessionTokens, s.SessionCost.String(), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save usage stats: %w", err)
	}
	return nil
}
