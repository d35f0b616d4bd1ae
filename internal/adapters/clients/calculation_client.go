// Package clients holds the HTTP adapters for the external calculation and
// customer services. Both are thin: typed result out, ErrUpstreamUnavailable
// on any transport or non-2xx failure. Timeout and retry policy belong to the
// collaborator configuration, not to the core.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

// CalculationClient resolves calculation ids against the calculation service.
type CalculationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCalculationClient creates a client with the given base URL and timeout.
func NewCalculationClient(baseURL string, timeout time.Duration) *CalculationClient {
	return &CalculationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ ports.CalculationProvider = (*CalculationClient)(nil)

func (c *CalculationClient) GetCalculationResult(ctx context.Context, calculationID string) (*domain.CalculationResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/calculations/%s", c.baseURL, url.PathEscape(calculationID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calculation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calculation service: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: calculation %s", apperrors.ErrNotFound, calculationID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: calculation service returned %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result domain.CalculationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: undecodable calculation response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return &result, nil
}
