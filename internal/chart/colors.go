package chart

import (
	"log/slog"
	"math/rand"

	chartDatamodel "github.com/savespree/savespree/internal/core/datamodel/chart"
)

// ColorCacheRepository persists the color assignments so chart colors stay
// stable across re-renders.
type ColorCacheRepository interface {
	SaveColorCache(cache chartDatamodel.ColorCache) error
	LoadColorCache() (chartDatamodel.ColorCache, error)
}

// Renderer draws the charts, assigning each date and category a random
// display color exactly once.
type Renderer struct {
	repo   ColorCacheRepository
	cache  chartDatamodel.ColorCache
	logger *slog.Logger
	rand   *rand.Rand
}

func NewRenderer(repo ColorCacheRepository, logger *slog.Logger) (*Renderer, error) {
	cache, err := repo.LoadColorCache()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		repo:   repo,
		cache:  cache,
		logger: logger,
		rand:   rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

func (r *Renderer) barColor(date string) string {
	if color, ok := r.cache.BarChartColors[date]; ok {
		return color
	}
	color := r.randomColor()
	r.cache.BarChartColors[date] = color
	r.saveCache()
	return color
}

func (r *Renderer) pieColor(category string) string {
	if color, ok := r.cache.PieChartColors[category]; ok {
		return color
	}
	color := r.randomColor()
	r.cache.PieChartColors[category] = color
	r.saveCache()
	return color
}

func (r *Renderer) saveCache() {
	if err := r.repo.SaveColorCache(r.cache); err != nil {
		// a stale cache only costs color stability, not correctness
		r.logger.Warn("failed to persist chart color cache", "error", err)
	}
}

const hexDigits = "0123456789ABCDEF"

func (r *Renderer) randomColor() string {
	color := make([]byte, 7)
	color[0] = '#'
	for i := 1; i < len(color); i++ {
		color[i] = hexDigits[r.rand.Intn(len(hexDigits))]
	}
	return string(color)
}
