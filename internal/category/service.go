package category

import (
	"context"
	"log/slog"
	"strings"

	categoryDatamodel "github.com/savespree/savespree/internal/core/datamodel/category"
	"github.com/savespree/savespree/internal/core/events"
)

// Repository is the slice of the storage adapter the service persists through.
type Repository interface {
	SaveCategories(categories []categoryDatamodel.Category) error
	LoadCategories() ([]categoryDatamodel.Category, error)
}

// Service owns the ordered category list. Every mutation persists the whole
// list and publishes categories.changed so the transaction form's selection
// list stays in sync.
type Service struct {
	repo       Repository
	bus        *events.EventBus
	logger     *slog.Logger
	categories []Category
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) (*Service, error) {
	stored, err := repo.LoadCategories()
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:       repo,
		bus:        bus,
		logger:     logger,
		categories: FromDataModelSlice(stored),
	}, nil
}

// EnsureDefaults seeds the default categories when the stored list is empty.
func (s *Service) EnsureDefaults() error {
	if len(s.categories) > 0 {
		return nil
	}
	s.categories = Defaults()
	s.logger.Info("seeded default categories", "count", len(s.categories))
	return s.sync()
}

// Add appends a category. Names are unique with a case-sensitive exact
// match; an empty or duplicate name is a validation warning and leaves the
// list unchanged.
func (s *Service) Add(name, emoji, color string, subBudget float64) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.logger.Warn("rejected category with empty name")
		return Category{}, ErrEmptyCategoryName
	}
	if s.Exists(name) {
		s.logger.Warn("rejected duplicate category", "name", name)
		return Category{}, ErrCategoryExists
	}
	if subBudget < 0 {
		s.logger.Warn("rejected negative category budget", "name", name, "budget", subBudget)
		return Category{}, ErrInvalidCategoryBudget
	}
	if color == "" {
		color = DefaultColor
	}

	cat := Category{Name: name, Emoji: strings.TrimSpace(emoji), Color: color, Budget: subBudget}
	s.categories = append(s.categories, cat)
	if err := s.sync(); err != nil {
		return Category{}, err
	}

	s.logger.Info("category added", "name", cat.Name, "budget", cat.Budget)
	return cat, nil
}

// Update replaces the category at the given position.
func (s *Service) Update(index int, updated Category) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryNotFound
	}
	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return ErrEmptyCategoryName
	}
	if updated.Budget < 0 {
		return ErrInvalidCategoryBudget
	}
	if updated.Color == "" {
		updated.Color = DefaultColor
	}

	s.categories[index] = updated
	if err := s.sync(); err != nil {
		return err
	}
	s.logger.Info("category updated", "index", index, "name", updated.Name)
	return nil
}

// Delete removes the category at the given position. Transactions that
// reference the deleted name keep it as an opaque string; there is no
// referential-integrity check.
func (s *Service) Delete(index int) error {
	if index < 0 || index >= len(s.categories) {
		return ErrCategoryNotFound
	}
	removed := s.categories[index]
	s.categories = append(s.categories[:index], s.categories[index+1:]...)
	if err := s.sync(); err != nil {
		return err
	}
	s.logger.Info("category removed", "name", removed.Name)
	return nil
}

// Move relocates the category at position from to position to, preserving
// the relative order of everything else.
func (s *Service) Move(from, to int) error {
	if from < 0 || from >= len(s.categories) || to < 0 || to >= len(s.categories) {
		return ErrCategoryNotFound
	}
	if from == to {
		return nil
	}

	moved := s.categories[from]
	s.categories = append(s.categories[:from], s.categories[from+1:]...)
	s.categories = append(s.categories[:to], append([]Category{moved}, s.categories[to:]...)...)
	if err := s.sync(); err != nil {
		return err
	}

	s.logger.Info("category moved", "name", moved.Name, "from", from, "to", to)
	return nil
}

// Categories returns a copy of the ordered list.
func (s *Service) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Service) Exists(name string) bool {
	for _, c := range s.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// SubBudget returns the category's configured sub-budget, or 0 when the
// category is unknown or has none.
func (s *Service) SubBudget(name string) float64 {
	for _, c := range s.categories {
		if c.Name == name {
			return c.Budget
		}
	}
	return 0
}

func (s *Service) sync() error {
	if err := s.repo.SaveCategories(ToDataModelSlice(s.categories)); err != nil {
		return err
	}
	if s.bus != nil {
		event := events.NewLedgerEvent(events.EventCategoriesChanged, map[string]interface{}{
			"count": len(s.categories),
		})
		if err := s.bus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish category event", "error", err)
		}
	}
	return nil
}
