package budget

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/savespree/savespree/internal"
	"github.com/savespree/savespree/internal/core/events"
)

var ErrInvalidBudget = internal.NewValidationError("please enter a valid budget amount", internal.ErrCodeInvalidBudget)

// Repository is the slice of the storage adapter the manager persists through.
type Repository interface {
	SaveBudget(amount float64) error
	LoadBudget() (float64, error)
}

// Manager holds the single global budget ceiling. A ceiling of 0 means
// "unset" and disables the check.
type Manager struct {
	repo    Repository
	bus     *events.EventBus
	logger  *slog.Logger
	ceiling float64
}

func NewManager(repo Repository, bus *events.EventBus, logger *slog.Logger) (*Manager, error) {
	ceiling, err := repo.LoadBudget()
	if err != nil {
		return nil, err
	}
	return &Manager{repo: repo, bus: bus, logger: logger, ceiling: ceiling}, nil
}

// SetBudget parses and stores a new ceiling. An absent, unparsable or
// non-positive amount is a validation warning and leaves the stored ceiling
// untouched.
func (m *Manager) SetBudget(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || amount <= 0 {
		m.logger.Warn("invalid budget input rejected", "input", raw)
		return 0, ErrInvalidBudget
	}

	m.ceiling = amount
	if err := m.repo.SaveBudget(amount); err != nil {
		return 0, err
	}

	if m.bus != nil {
		event := events.NewLedgerEvent(events.EventBudgetUpdated, map[string]interface{}{
			"ceiling": amount,
		})
		if err := m.bus.Publish(context.Background(), event); err != nil {
			m.logger.Error("failed to publish budget event", "error", err)
		}
	}

	m.logger.Info("budget set", "ceiling", amount)
	return amount, nil
}

func (m *Manager) Ceiling() float64 {
	return m.ceiling
}

// Check reports whether the expense total is within the ceiling.
func (m *Manager) Check(totalExpenses float64) bool {
	return Check(totalExpenses, m.ceiling)
}

// Check is the pure predicate behind the budget warning: false only when a
// ceiling is set and the expense total exceeds it.
func Check(totalExpenses, ceiling float64) bool {
	if ceiling > 0 && totalExpenses > ceiling {
		return false
	}
	return true
}

// Progress returns how much of the ceiling is consumed, as a percentage
// capped at 100. An unset ceiling reads as 0.
func (m *Manager) Progress(totalExpenses float64) float64 {
	if m.ceiling <= 0 {
		return 0
	}
	return math.Min(totalExpenses/m.ceiling*100, 100)
}
