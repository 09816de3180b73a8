package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/poultrydash/internal/config"
	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

const defaultTimeout = 10 * time.Second

// APIClient fetches feed forecasts from the forecasting backend.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a forecast client. The bearer token, when set, is sent on
// every request.
func NewClient(cfg config.ForecastConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{httpClient: restyClient}
}

type apiError struct {
	Detail string `json:"detail"`
}

// Forecast returns the forecast sequence for batchID.
func (c *APIClient) Forecast(ctx context.Context, batchID string) (models.Forecast, error) {
	result := new(models.Forecast)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/get-feed-forecast/" + url.PathEscape(batchID))
	if err != nil {
		return models.Forecast{}, fmt.Errorf("fetch forecast: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return models.Forecast{}, fmt.Errorf("forecast for %s: %w", batchID, models.ErrBatchNotFound)
	case resp.StatusCode() >= http.StatusBadRequest:
		return models.Forecast{}, fmt.Errorf("forecast api error: code=%d, detail=%s", resp.StatusCode(), apiErr.Detail)
	}

	return *result, nil
}
