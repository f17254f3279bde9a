package category

import (
	"github.com/savespree/savespree/internal"
	categoryDatamodel "github.com/savespree/savespree/internal/core/datamodel/category"
)

var (
	ErrEmptyCategoryName     = internal.NewValidationError("category name is required", internal.ErrCodeEmptyCategory)
	ErrCategoryExists        = internal.NewValidationError("category already exists", internal.ErrCodeCategoryExists)
	ErrInvalidCategoryBudget = internal.NewValidationError("category budget cannot be negative", internal.ErrCodeCategoryBudget)
	ErrCategoryNotFound      = internal.NewNotFoundError("category not found", internal.ErrCodeCategoryNotFound)
)

const DefaultColor = "#ffffff"

// Category is a named, colored, emoji-tagged spending bucket with an
// optional sub-budget (0 means none). Name is the unique key; list position
// is user-controlled and significant.
type Category struct {
	Name   string  `json:"name"`
	Emoji  string  `json:"emoji,omitempty"`
	Color  string  `json:"color"`
	Budget float64 `json:"budget"`
}

// Defaults returns the categories seeded into an empty store.
func Defaults() []Category {
	return []Category{
		{Name: "Food", Emoji: "🍔", Color: "#f44336", Budget: 0},
		{Name: "Rent", Emoji: "🏠", Color: "#3f51b5", Budget: 0},
		{Name: "Salary", Emoji: "💼", Color: "#4caf50", Budget: 0},
		{Name: "Entertainment", Emoji: "🎮", Color: "#ff9800", Budget: 0},
	}
}

func ToDataModel(c Category) categoryDatamodel.Category {
	return categoryDatamodel.Category{
		Name:   c.Name,
		Emoji:  c.Emoji,
		Color:  c.Color,
		Budget: c.Budget,
	}
}

func FromDataModel(c categoryDatamodel.Category) Category {
	return Category{
		Name:   c.Name,
		Emoji:  c.Emoji,
		Color:  c.Color,
		Budget: c.Budget,
	}
}

func ToDataModelSlice(categories []Category) []categoryDatamodel.Category {
	result := make([]categoryDatamodel.Category, len(categories))
	for i, c := range categories {
		result[i] = ToDataModel(c)
	}
	return result
}

func FromDataModelSlice(categories []categoryDatamodel.Category) []Category {
	result := make([]Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}
