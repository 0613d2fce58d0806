// Package payment wraps the payment gateway: order creation through the
// provider client and local HMAC verification of the callback signature.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"jobboard/internal/config"
)

var ErrInvalidSignature = errors.New("payment signature mismatch")

// Order is the subset of the gateway's order object the API returns to the
// frontend checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Gateway creates orders and verifies payment signatures.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

// NewRazorpay builds the gateway client once at process start; handlers get
// it injected rather than reaching for a global.
func NewRazorpay(cfg config.RazorpayConfig) Gateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keySecret: cfg.KeySecret,
	}
}

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	if currency == "" {
		currency = "INR"
	}
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order := &Order{Amount: amount, Currency: currency, Receipt: receipt}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	return order, nil
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	return VerifySignature(orderID, paymentID, signature, g.keySecret)
}

// VerifySignature checks the provider-supplied signature: HMAC-SHA256 over
// "order_id|payment_id" keyed with the API secret, hex-encoded.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
