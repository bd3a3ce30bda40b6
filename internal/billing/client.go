package billing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CustomerCreator is the billing collaborator the onboarding flow depends on.
type CustomerCreator interface {
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (string, error)
}

// Address mirrors the billing provider's address payload.
type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CreateCustomerRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Shipping *Address `json:"shipping_address,omitempty"`
	Billing  *Address `json:"billing_address,omitempty"`
}

type createCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Message    string `json:"message,omitempty"`
}

// Client talks to the billing API over HTTP. One attempt per call, no
// retries: the onboarding flow is strictly ordered and a transient billing
// failure surfaces to the caller instead of being replayed.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// CreateCustomer registers a billing customer and returns its id.
func (c *Client) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (string, error) {
	var result createCustomerResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/v1/customers")

	if err != nil {
		c.logger.Error("billing API call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", xerrors.ErrBillingFailed, err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		c.logger.Error("billing API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", result.Message),
		)
		return "", fmt.Errorf("%w: status %d", xerrors.ErrBillingFailed, resp.StatusCode())
	}

	return result.CustomerID, nil
}
