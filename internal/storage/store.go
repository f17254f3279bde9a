package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	categoryDatamodel "github.com/savespree/savespree/internal/core/datamodel/category"
	chartDatamodel "github.com/savespree/savespree/internal/core/datamodel/chart"
	summaryDatamodel "github.com/savespree/savespree/internal/core/datamodel/summary"
	transactionDatamodel "github.com/savespree/savespree/internal/core/datamodel/transaction"
)

// Persisted keys. Every save is an independent write; there is no
// transaction spanning two keys.
const (
	KeyBudgetAmount     = "budgetAmount"
	KeyTotalIncome      = "totalIncome"
	KeyTotalExpenses    = "totalExpenses"
	KeyTransactions     = "transactions"
	KeyCategories       = "categories"
	KeyMonthlySummaries = "monthlySummaries"
	KeyLastMonth        = "lastMonth"
	KeyColorCache       = "colorCache"
)

// Entry is one row of the local key-value store.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;not null"`
}

func (Entry) TableName() string {
	return "store_entries"
}

// Store exposes typed get/set wrappers over the key-value table. A missing
// key reads as the zero value of its type, never as an error.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (and creates, if needed) the SQLite file backing the store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store schema: %w", err)
	}
	return NewStore(db, logger), nil
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *Store) set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to persist key %s: %w", key, err)
	}
	return nil
}

func (s *Store) setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}
	return s.set(key, string(data))
}

func (s *Store) getFloat(key string) (float64, error) {
	raw, ok, err := s.get(key)
	if err != nil || !ok {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// an unparsable scalar reads as zero, matching the loose
		// parse-or-default load semantics the store always had
		s.logger.Warn("unparsable stored value, treating as zero", "key", key, "value", raw)
		return 0, nil
	}
	return v, nil
}

func (s *Store) setFloat(key string, v float64) error {
	return s.set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (s *Store) SaveBudget(amount float64) error {
	if err := s.setFloat(KeyBudgetAmount, amount); err != nil {
		return err
	}
	s.logger.Debug("budget saved to store", "amount", amount)
	return nil
}

func (s *Store) LoadBudget() (float64, error) {
	return s.getFloat(KeyBudgetAmount)
}

// SaveTotals writes the two running totals as independent keys.
func (s *Store) SaveTotals(totalIncome, totalExpenses float64) error {
	if err := s.setFloat(KeyTotalIncome, totalIncome); err != nil {
		return err
	}
	return s.setFloat(KeyTotalExpenses, totalExpenses)
}

func (s *Store) LoadTotals() (totalIncome, totalExpenses float64, err error) {
	totalIncome, err = s.getFloat(KeyTotalIncome)
	if err != nil {
		return 0, 0, err
	}
	totalExpenses, err = s.getFloat(KeyTotalExpenses)
	if err != nil {
		return 0, 0, err
	}
	return totalIncome, totalExpenses, nil
}

func (s *Store) SaveTransactions(transactions []transactionDatamodel.Transaction) error {
	if transactions == nil {
		transactions = []transactionDatamodel.Transaction{}
	}
	return s.setJSON(KeyTransactions, transactions)
}

func (s *Store) LoadTransactions() ([]transactionDatamodel.Transaction, error) {
	raw, ok, err := s.get(KeyTransactions)
	if err != nil || !ok {
		return nil, err
	}
	var transactions []transactionDatamodel.Transaction
	if err := json.Unmarshal([]byte(raw), &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode stored transactions: %w", err)
	}
	return transactions, nil
}

func (s *Store) SaveCategories(categories []categoryDatamodel.Category) error {
	if categories == nil {
		categories = []categoryDatamodel.Category{}
	}
	return s.setJSON(KeyCategories, categories)
}

func (s *Store) LoadCategories() ([]categoryDatamodel.Category, error) {
	raw, ok, err := s.get(KeyCategories)
	if err != nil || !ok {
		return nil, err
	}
	var categories []categoryDatamodel.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("failed to decode stored categories: %w", err)
	}
	return categories, nil
}

// SaveMonthlySummary upserts one month into the archive map. The archive is
// read and written whole; duplicate months are overwritten.
func (s *Store) SaveMonthlySummary(month string, summary summaryDatamodel.MonthlySummary) error {
	summaries, err := s.LoadMonthlySummaries()
	if err != nil {
		return err
	}
	summaries[month] = summary
	if err := s.setJSON(KeyMonthlySummaries, summaries); err != nil {
		return err
	}
	s.logger.Debug("monthly summary saved", "month", month,
		"total_income", summary.TotalIncome,
		"total_expenses", summary.TotalExpenses)
	return nil
}

func (s *Store) LoadMonthlySummaries() (map[string]summaryDatamodel.MonthlySummary, error) {
	summaries := make(map[string]summaryDatamodel.MonthlySummary)
	raw, ok, err := s.get(KeyMonthlySummaries)
	if err != nil || !ok {
		return summaries, err
	}
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode stored monthly summaries: %w", err)
	}
	return summaries, nil
}

func (s *Store) SaveLastMonth(month string) error {
	return s.set(KeyLastMonth, month)
}

func (s *Store) LoadLastMonth() (string, error) {
	raw, _, err := s.get(KeyLastMonth)
	return raw, err
}

func (s *Store) SaveColorCache(cache chartDatamodel.ColorCache) error {
	return s.setJSON(KeyColorCache, cache)
}

func (s *Store) LoadColorCache() (chartDatamodel.ColorCache, error) {
	cache := chartDatamodel.ColorCache{
		BarChartColors: make(map[string]string),
		PieChartColors: make(map[string]string),
	}
	raw, ok, err := s.get(KeyColorCache)
	if err != nil || !ok {
		return cache, err
	}
	if err := json.Unmarshal([]byte(raw), &cache); err != nil {
		return cache, fmt.Errorf("failed to decode stored color cache: %w", err)
	}
	if cache.BarChartColors == nil {
		cache.BarChartColors = make(map[string]string)
	}
	if cache.PieChartColors == nil {
		cache.PieChartColors = make(map[string]string)
	}
	return cache, nil
}
