package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackInitializeTransaction(t *testing.T) {
	t.Run("successful initialization", func(t *testing.T) {
		var captured map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/transaction/initialize", r.URL.Path)
			require.Equal(t, "Bearer sk_test_xyz", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Authorization URL created",
				"data": map[string]string{
					"authorization_url": "https://checkout.paystack.com/abc123",
					"access_code":       "abc123",
					"reference":         "ref_001",
				},
			})
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		result, err := client.InitializeTransaction(context.Background(),
			"reader@example.com", 1000000, "NGN", "http://localhost:3000/cb", "order-42")
		require.NoError(t, err)

		assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
		assert.Equal(t, "ref_001", result.Reference)

		// Amount travels in the minor unit, the order id in metadata
		assert.EqualValues(t, 1000000, captured["amount"])
		metadata := captured["metadata"].(map[string]interface{})
		assert.Equal(t, "order-42", metadata["order_id"])
		assert.Equal(t, "http://localhost:3000/cb", captured["callback_url"])
	})

	t.Run("gateway rejection surfaces its message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Invalid amount",
			})
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		_, err := client.InitializeTransaction(context.Background(),
			"reader@example.com", -5, "NGN", "http://localhost:3000/cb", "order-42")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid amount")
	})
}

func TestPaystackVerifyTransaction(t *testing.T) {
	t.Run("confirmed charge yields the embedded order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/transaction/verify/ref_001", r.URL.Path)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Verification successful",
				"data": map[string]interface{}{
					"status":   "success",
					"amount":   1000000,
					"currency": "NGN",
					"metadata": map[string]string{"order_id": "order-42"},
				},
			})
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		result, err := client.VerifyTransaction(context.Background(), "ref_001")
		require.NoError(t, err)
		assert.Equal(t, "order-42", result.OrderID)
		assert.EqualValues(t, 1000000, result.Amount)
	})

	t.Run("status false is not verified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Transaction reference not found",
			})
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		_, err := client.VerifyTransaction(context.Background(), "ref_bogus")
		assert.ErrorIs(t, err, ErrPaymentNotVerified)
	})

	t.Run("abandoned charge is not verified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Verification successful",
				"data": map[string]interface{}{
					"status":   "abandoned",
					"metadata": map[string]string{"order_id": "order-42"},
				},
			})
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		_, err := client.VerifyTransaction(context.Background(), "ref_001")
		assert.ErrorIs(t, err, ErrPaymentNotVerified)
	})

	t.Run("http error is not verified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":false,"message":"not found"}`))
		}))
		defer server.Close()

		client := NewPaystackClient(server.URL, "sk_test_xyz")

		_, err := client.VerifyTransaction(context.Background(), "ref_404")
		assert.ErrorIs(t, err, ErrPaymentNotVerified)
	})
}

func TestIsStripeReference(t *testing.T) {
	assert.True(t, IsStripeReference("cs_test_a1b2c3"))
	assert.False(t, IsStripeReference("ref_001"))
	assert.False(t, IsStripeReference(""))
}
