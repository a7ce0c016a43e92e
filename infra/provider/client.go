package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/shopspring/decimal"
)

const maxErrorBody = 512

// newHTTPClient returns a client whose requests give up after timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON fetches url and decodes the JSON body into out. Every failure is
// reported as domain.ErrRateUnavailable.
func getJSON(ctx context.Context, client *http.Client, logger *slog.Logger, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", domain.ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("Rate request failed", "url", url, "error", err)
		return fmt.Errorf("%w: failed to make request: %v", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Error("Rate API returned error status", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("%w: API returned status %d: %s", domain.ErrRateUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("Rate API returned malformed body", "url", url, "error", err)
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrRateUnavailable, err)
	}
	return nil
}

// quote looks code up in rates and rejects missing or non-positive values.
func quote(rates map[string]decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: currency %s not found in response", domain.ErrRateUnavailable, code)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s", domain.ErrRateUnavailable, code)
	}
	return rate, nil
}
