package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/shopspring/decimal"
)

// OpenERAPIKey is the selector key of OpenERAPI.
const OpenERAPIKey = "openerapublic"

const openERQuoteBase = "USD"

// OpenERAPIResponse is the body of GET {base}/USD on open.er-api.com.
type OpenERAPIResponse struct {
	Result             string                     `json:"result"`
	BaseCode           string                     `json:"base_code"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	Rates              map[string]decimal.Decimal `json:"rates"`
	ErrorType          string                     `json:"error-type,omitempty"`
}

// OpenERAPI quotes every currency against USD and derives the cross rate
// rates[to] / rates[from].
type OpenERAPI struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenERAPI creates the adapter for baseURL (e.g. https://open.er-api.com/v6/latest).
func NewOpenERAPI(baseURL string, timeout time.Duration, logger *slog.Logger) *OpenERAPI {
	return &OpenERAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
		logger:     logger.With("provider", OpenERAPIKey),
	}
}

// GetRate implements provider.RateSource.
func (p *OpenERAPI) GetRate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, openERQuoteBase)
	p.logger.Debug("Fetching exchange rate", "url", url, "from", from, "to", to)

	var apiResp OpenERAPIResponse
	if err := getJSON(ctx, p.httpClient, p.logger, url, &apiResp); err != nil {
		return decimal.Zero, err
	}
	if apiResp.Result != "success" {
		p.logger.Error("Rate API returned failure result", "result", apiResp.Result, "error_type", apiResp.ErrorType)
		return decimal.Zero, fmt.Errorf("%w: API returned result=%s", domain.ErrRateUnavailable, apiResp.Result)
	}

	rateFrom, err := quote(apiResp.Rates, from.String())
	if err != nil {
		return decimal.Zero, err
	}
	rateTo, err := quote(apiResp.Rates, to.String())
	if err != nil {
		return decimal.Zero, err
	}
	return rateTo.DivRound(rateFrom, 12), nil
}

// Name implements provider.RateSource.
func (p *OpenERAPI) Name() string {
	return "Open ER API (public)"
}

var _ provider.RateSource = (*OpenERAPI)(nil)
