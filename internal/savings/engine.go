// Package savings derives the current savings balance from flagged
// contribution transactions and projects when the user-set goal will be
// reached.
package savings

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/notify"
	"github.com/dromero/financepro/internal/storage"
)

// defaultGoal is the goal seeded on first run.
var defaultGoal = decimal.NewFromInt(10000)

// Ledger is the slice of the ledger store this engine reads.
type Ledger interface {
	Transactions() []domain.Transaction
}

// ProjectionState classifies the goal ETA.
type ProjectionState string

const (
	// ProjectionReached means the goal is already met.
	ProjectionReached ProjectionState = "reached"
	// ProjectionInsufficientData means there were no positive
	// contributions in the trailing 30 days to extrapolate from.
	ProjectionInsufficientData ProjectionState = "insufficient_data"
	// ProjectionEstimate carries a months-remaining estimate.
	ProjectionEstimate ProjectionState = "estimate"
)

// Projection is the linear goal ETA derived from recent contributions.
type Projection struct {
	State               ProjectionState `json:"state"`
	MonthsRemaining     int             `json:"monthsRemaining,omitempty"`
	RecentContributions decimal.Decimal `json:"recentContributions"`
}

// Status is the savings panel snapshot.
type Status struct {
	Goal      decimal.Decimal `json:"goal"`
	Current   decimal.Decimal `json:"current"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   float64         `json:"percent"`
}

// persisted is the stored shape of the goal singleton.
type persisted struct {
	Goal    decimal.Decimal `json:"goal"`
	Current decimal.Decimal `json:"current"`
}

// Engine owns the savings goal singleton.
type Engine struct {
	mu     sync.Mutex
	kv     storage.KV
	ledger Ledger
	sink   notify.Sink
	log    zerolog.Logger
	now    func() time.Time

	goal    decimal.Decimal
	current decimal.Decimal
}

// NewEngine creates a savings engine. A nil sink keeps it silent.
func NewEngine(kv storage.KV, ledger Ledger, sink notify.Sink, log zerolog.Logger) *Engine {
	if sink == nil {
		sink = notify.Nop{}
	}
	return &Engine{
		kv:      kv,
		ledger:  ledger,
		sink:    sink,
		log:     log,
		now:     time.Now,
		goal:    defaultGoal,
		current: decimal.Zero,
	}
}

// Load reads the stored goal, seeding the default on first run, then
// derives the current balance from the ledger.
func (e *Engine) Load() error {
	e.mu.Lock()
	data, ok, err := e.kv.Get(storage.KeySavings)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("load savings: %w", err)
	}
	if ok {
		var stored persisted
		if err := json.Unmarshal(data, &stored); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("load savings: %w", err)
		}
		// Only the goal is trusted from storage; current is derived.
		e.goal = stored.Goal
	} else {
		if err := e.persistLocked(); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.mu.Unlock()

	_, err = e.Recalculate()
	return err
}

func (e *Engine) persistLocked() error {
	data, err := json.Marshal(persisted{Goal: e.goal, Current: e.current})
	if err != nil {
		return fmt.Errorf("save savings: %w", err)
	}
	return e.kv.Set(storage.KeySavings, data)
}

// contribution returns the signed effect of a transaction on the
// savings balance: income contributions add, expense contributions
// (withdrawals) subtract.
func contribution(t domain.Transaction) decimal.Decimal {
	if t.Type == domain.TypeIncome {
		return t.Amount.Abs()
	}
	return t.Amount.Abs().Neg()
}

// Recalculate derives the current savings from every completed
// contribution transaction and persists it alongside the goal.
func (e *Engine) Recalculate() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range e.ledger.Transactions() {
		if t.Status != domain.StatusCompleted || !t.IsSavingsContribution {
			continue
		}
		total = total.Add(contribution(t))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = total
	if err := e.persistLocked(); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// UpdateGoal sets a new goal. A non-nil current overrides the derived
// value as a manual correction.
func (e *Engine) UpdateGoal(goal decimal.Decimal, current *decimal.Decimal) error {
	e.mu.Lock()
	e.goal = goal
	if current != nil {
		e.current = *current
	}
	err := e.persistLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.sink.Push("Meta de ahorro actualizada.", domain.NotifySuccess)
	return nil
}

// Status returns the goal, derived balance, remaining amount and
// progress percentage (capped at 100).
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{
		Goal:      e.goal,
		Current:   e.current,
		Remaining: decimal.Max(decimal.Zero, e.goal.Sub(e.current)),
	}
	if e.goal.Sign() > 0 {
		percent, _ := e.current.Div(e.goal).Mul(decimal.NewFromInt(100)).Float64()
		if percent > 100 {
			percent = 100
		}
		status.Percent = percent
	}
	return status
}

// RecentContributions sums contributions of the trailing 30 days.
func (e *Engine) RecentContributions(asOf time.Time) decimal.Decimal {
	since := asOf.AddDate(0, 0, -30)
	total := decimal.Zero
	for _, t := range e.ledger.Transactions() {
		if t.Status != domain.StatusCompleted || !t.IsSavingsContribution {
			continue
		}
		if t.Date.Before(since) {
			continue
		}
		total = total.Add(contribution(t))
	}
	return total
}

// Project extrapolates the trailing-30-day contribution rate linearly:
// monthsRemaining = ceil(remaining / rate).
func (e *Engine) Project(asOf time.Time) Projection {
	recent := e.RecentContributions(asOf)

	e.mu.Lock()
	remaining := e.goal.Sub(e.current)
	e.mu.Unlock()

	projection := Projection{RecentContributions: recent}
	switch {
	case remaining.Sign() <= 0:
		projection.State = ProjectionReached
	case recent.Sign() <= 0:
		projection.State = ProjectionInsufficientData
	default:
		projection.State = ProjectionEstimate
		months := remaining.Div(recent).Ceil()
		projection.MonthsRemaining = int(months.IntPart())
	}
	return projection
}
