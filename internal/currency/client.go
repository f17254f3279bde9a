// Package currency looks up exchange rates so entered amounts can be
// normalized into the base currency before they enter the ledger. A single
// best-effort fetch per conversion: no caching, no retry.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	// APIURL is the exchangerate-api style endpoint serving
	// GET <APIURL>/latest/<CODE>.
	APIURL         string
	RequestTimeout time.Duration
}

type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiURL:     strings.TrimRight(config.APIURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Convert turns amount from one currency into another, rounded to 2
// fractional digits. Any failure is returned to the caller, which treats the
// lookup as fail-open and keeps the entered amount.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	rates, err := c.fetchRates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("conversion rate not found for %s", to)
	}

	converted := math.Round(amount*rate*100) / 100
	c.logger.Debug("currency converted",
		"from", from, "to", to, "amount", amount, "rate", rate, "converted", converted)
	return converted, nil
}

// Currencies returns the supported currency codes for the given base, sorted.
func (c *Client) Currencies(ctx context.Context, base string) ([]string, error) {
	rates, err := c.fetchRates(ctx, base)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (c *Client) fetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/latest/%s", c.apiURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate API returned no rates for %s", base)
	}
	return payload.Rates, nil
}
