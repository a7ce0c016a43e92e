package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/shopspring/decimal"
)

// ExchangeRateAPIKey is the selector key of ExchangeRateAPI.
const ExchangeRateAPIKey = "exchangerateapi"

// ExchangeRateAPIResponse is the body of GET {base}/{from} on exchangerate-api.com.
// Example: { "base": "USD", "date": "2025-01-01", "rates": { "PEN": 3.75, ... } }
type ExchangeRateAPIResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRateAPI reads the direct pairwise rate from exchangerate-api.com.
type ExchangeRateAPI struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExchangeRateAPI creates the adapter for baseURL
// (e.g. https://api.exchangerate-api.com/v4/latest).
func NewExchangeRateAPI(baseURL string, timeout time.Duration, logger *slog.Logger) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
		logger:     logger.With("provider", ExchangeRateAPIKey),
	}
}

// GetRate implements provider.RateSource.
func (p *ExchangeRateAPI) GetRate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, from)
	p.logger.Debug("Fetching exchange rate", "url", url, "to", to)

	var apiResp ExchangeRateAPIResponse
	if err := getJSON(ctx, p.httpClient, p.logger, url, &apiResp); err != nil {
		return decimal.Zero, err
	}
	return quote(apiResp.Rates, to.String())
}

// Name implements provider.RateSource.
func (p *ExchangeRateAPI) Name() string {
	return "ExchangeRate-API.com (public)"
}

var _ provider.RateSource = (*ExchangeRateAPI)(nil)
