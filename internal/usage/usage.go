// Package usage accumulates token and cost totals across the process
// lifetime and the current session.
package usage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizcraft/internal/logger"
)

// Stats is a point-in-time copy of the usage counters. Costs are USD.
type Stats struct {
	TotalTokens   int64
	TotalCost     decimal.Decimal
	SessionTokens int64
	SessionCost   decimal.Decimal
}

// Pricer looks up the USD price per 1000 tokens for a model. fallback is
// true when model was unknown and pricedAs names the entry used instead.
type Pricer interface {
	Price(model string) (price decimal.Decimal, pricedAs string, fallback bool)
}

// Persister stores Stats durably.
type Persister interface {
	LoadUsage(ctx context.Context) (Stats, error)
	SaveUsage(ctx context.Context, s Stats) error
}

// Charge describes what a single Record call added.
type Charge struct {
	Tokens int64
	Cost   decimal.Decimal
	Model  string

	// PricedAs is the pricing entry used. It differs from Model when
	// PricingFallback is true.
	PricedAs        string
	PricingFallback bool
}

var thousand = decimal.NewFromInt(1000)

// Tracker accumulates usage. All methods are safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	stats     Stats
	pricer    Pricer
	persister Persister
}

// NewTracker returns a Tracker starting from zero. persister may be nil.
func NewTracker(pricer Pricer, persister Persister) *Tracker {
	return &Tracker{
		stats:     Stats{TotalCost: decimal.Zero, SessionCost: decimal.Zero},
		pricer:    pricer,
		persister: persister,
	}
}

// Load returns a Tracker initialised from the persisted stats.
func Load(ctx context.Context, persister Persister, pricer Pricer) (*Tracker, error) {
	t := NewTracker(pricer, persister)
	if persister == nil {
		return t, nil
	}
	stats, err := persister.LoadUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("load usage: %w", err)
	}
	t.stats = stats
	return t, nil
}

// Record adds tokens used by model to both the total and session counters
// and persists the result. cost = tokens * pricePer1K / 1000. If
// persisting fails the in-memory counters keep the update and the error is
// returned.
func (t *Tracker) Record(ctx context.Context, tokens int, model string) (Charge, error) {
	if tokens < 0 {
		return Charge{}, fmt.Errorf("negative token count %d", tokens)
	}

	price, pricedAs, fallback := t.pricer.Price(model)
	n := int64(tokens)
	cost := price.Mul(decimal.NewFromInt(n)).Div(thousand)

	charge := Charge{
		Tokens:          n,
		Cost:            cost,
		Model:           model,
		PricedAs:        pricedAs,
		PricingFallback: fallback,
	}

	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"model":  model,
		"tokens": tokens,
		"cost":   cost.String(),
	})
	if fallback {
		log.WithField("priced_as", pricedAs).Warn("no pricing for model, using default entry")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.TotalTokens += n
	t.stats.TotalCost = t.stats.TotalCost.Add(cost)
	t.stats.SessionTokens += n
	t.stats.SessionCost = t.stats.SessionCost.Add(cost)
	log.Debug("usage recorded")

	if err := t.persistLocked(ctx); err != nil {
		return charge, err
	}
	return charge, nil
}

// ResetSession zeroes the session counters. Totals are kept.
func (t *Tracker) ResetSession(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.SessionTokens = 0
	t.stats.SessionCost = decimal.Zero
	return t.persistLocked(ctx)
}

// Snapshot returns a copy of the counters.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	if t.persister == nil {
		return nil
	}
	if err := t.persister.SaveUsage(ctx, t.stats); err != nil {
		logger.WithContext(ctx).WithError(err).Warn("failed to persist usage stats")
		return fmt.Errorf("save usage: %w", err)
	}
	return nil
}
