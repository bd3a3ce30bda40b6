package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func customerRequest() *CreateCustomerRequest {
	addr := &Address{
		Line1:      "12 Long Street",
		City:       "Los Angeles",
		State:      "CA",
		PostalCode: "90210",
		Country:    "US",
	}
	return &CreateCustomerRequest{
		Name:     "Acme Agency",
		Email:    "hello@acme.test",
		Shipping: addr,
		Billing:  addr,
	}
}

func TestCreateCustomer_Success(t *testing.T) {
	var received CreateCustomerRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/customers", r.URL.Path)
		require.Equal(t, "Bearer sk_test_1", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"customer_id": "cus_123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test_1", 5*time.Second, zap.NewNop())
	id, err := client.CreateCustomer(context.Background(), customerRequest())

	require.NoError(t, err)
	assert.Equal(t, "cus_123", id)

	// The address payload carries the real state and postal code.
	require.NotNil(t, received.Shipping)
	assert.Equal(t, "CA", received.Shipping.State)
	assert.Equal(t, "90210", received.Shipping.PostalCode)
	require.NotNil(t, received.Billing)
	assert.Equal(t, "CA", received.Billing.State)
}

func TestCreateCustomer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test_1", 5*time.Second, zap.NewNop())
	_, err := client.CreateCustomer(context.Background(), customerRequest())

	require.ErrorIs(t, err, xerrors.ErrBillingFailed)
}

func TestCreateCustomer_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "sk_test_1", time.Second, zap.NewNop())
	_, err := client.CreateCustomer(context.Background(), customerRequest())

	require.ErrorIs(t, err, xerrors.ErrBillingFailed)
}
