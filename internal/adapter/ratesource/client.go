package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/domain"
)

// Client fetches exchange-rate tables from an open.er-api.com compatible
// provider. The endpoint is GET {base_url}/{CUR} and the payload carries a
// result marker, the rate map and the upstream update timestamp.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a new rate source client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type ratesPayload struct {
	Result             string                     `json:"result"`
	Rates              map[string]decimal.Decimal `json:"rates"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
}

// Fetch retrieves the rate table for a base currency. Any transport, status
// or payload failure maps to ErrRateUnavailable so callers fall back to
// cached rates.
func (c *Client) Fetch(ctx context.Context, base string) (*domain.RateTable, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("base", base).Msg("exchange rate request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("base", base).Msg("exchange rate provider returned non-OK status")
		return nil, fmt.Errorf("%w: provider returned status %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}

	if payload.Result != "success" {
		return nil, fmt.Errorf("%w: provider result %q", domain.ErrRateUnavailable, payload.Result)
	}

	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", domain.ErrRateUnavailable)
	}

	c.logger.Debug().
		Str("base", base).
		Int("currencies", len(payload.Rates)).
		Time("provider_updated", time.Unix(payload.TimeLastUpdateUnix, 0).UTC()).
		Msg("fetched exchange rates")

	// The cache TTL counts from the fetch, not from the provider's own
	// update cycle, which runs on a daily cadence.
	return &domain.RateTable{
		Base:      base,
		Rates:     payload.Rates,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
