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

// CustomerClient resolves customer ids against the customer service.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCustomerClient creates a client with the given base URL and timeout.
func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	return &CustomerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ ports.CustomerProvider = (*CustomerClient)(nil)

func (c *CustomerClient) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	endpoint := fmt.Sprintf("%s/api/v1/customers/%s", c.baseURL, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build customer request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: customer service: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: customer service returned %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var customer domain.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("%w: undecodable customer response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return &customer, nil
}
