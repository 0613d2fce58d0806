package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		wantErr   error
	}{
		{
			name:      "valid signature",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: sign("order_123", "pay_456", secret),
		},
		{
			name:      "tampered payment id",
			orderID:   "order_123",
			paymentID: "pay_789",
			signature: sign("order_123", "pay_456", secret),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "signature from wrong secret",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: sign("order_123", "pay_456", "other-secret"),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "empty signature",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: "",
			wantErr:   ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.orderID, tt.paymentID, tt.signature, secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
