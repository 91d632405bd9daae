package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// ErrPaymentNotVerified means the gateway answered but did not report a
// successful transaction. The order must stay pending.
var ErrPaymentNotVerified = errors.New("payment not verified")

type PaystackClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

var Paystack *PaystackClient

// InitPaystack configures the global Paystack client from env
func InitPaystack() {
	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	if secret == "" {
		log.Fatal("❌ Cannot initialize Paystack: secret key missing")
	}

	baseURL := os.Getenv("PAYSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	Paystack = NewPaystackClient(baseURL, secret)
	log.Println("✅ Paystack initialized")
}

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

type PaystackInitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type PaystackVerifyResult struct {
	Status   string
	Amount   int64
	Currency string
	OrderID  string
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction opens a hosted transaction. Amount is already
// in the gateway minor unit (kobo/cents). The order id travels in the
// metadata so the verify leg can resolve it back to a local order.
func (p *PaystackClient) InitializeTransaction(ctx context.Context, email string, amountMinor int64, currency, callbackURL, orderID string) (*PaystackInitResult, error) {
	payload := map[string]interface{}{
		"email":        email,
		"amount":       amountMinor,
		"currency":     currency,
		"callback_url": callbackURL,
		"metadata": map[string]string{
			"order_id": orderID,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}

	if !envelope.Status {
		// The message field is Paystack's own human-readable reason
		return nil, fmt.Errorf("paystack rejected transaction: %s", envelope.Message)
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("decode paystack data: %w", err)
	}

	return &PaystackInitResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// VerifyTransaction checks a reference against Paystack. Anything other
// than a confirmed successful charge yields ErrPaymentNotVerified.
func (p *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*PaystackVerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		log.Printf("❌ Paystack verify error %d: %s", resp.StatusCode, string(b))
		return nil, ErrPaymentNotVerified
	}

	var envelope paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	if !envelope.Status {
		log.Printf("❌ Paystack verify refused: %s", envelope.Message)
		return nil, ErrPaymentNotVerified
	}

	var data struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Metadata struct {
			OrderID string `json:"order_id"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("decode paystack data: %w", err)
	}

	if data.Status != "success" {
		return nil, ErrPaymentNotVerified
	}

	return &PaystackVerifyResult{
		Status:   data.Status,
		Amount:   data.Amount,
		Currency: data.Currency,
		OrderID:  data.Metadata.OrderID,
	}, nil
}
