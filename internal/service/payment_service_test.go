package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/payment"
	"jobboard/internal/repository/mocks"
)

type fakeGateway struct {
	orders    []payment.Order
	verifyErr error
}

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string) (*payment.Order, error) {
	o := payment.Order{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt}
	g.orders = append(g.orders, o)
	return &o, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	return g.verifyErr
}

func TestPaymentService_CreateOrder(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPaymentService(gw, new(mocks.MockEmployerRepository), nil)

	order, err := svc.CreateOrder(context.Background(), "emp-1", "Gold")

	require.NoError(t, err)
	assert.Equal(t, Plans["Gold"].Amount, order.Amount)
	assert.Equal(t, "INR", order.Currency)

	_, err = svc.CreateOrder(context.Background(), "emp-1", "Diamond")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestPaymentService_Confirm(t *testing.T) {
	t.Run("bad signature activates nothing", func(t *testing.T) {
		gw := &fakeGateway{verifyErr: payment.ErrInvalidSignature}
		employers := new(mocks.MockEmployerRepository)

		svc := NewPaymentService(gw, employers, nil)
		_, err := svc.Confirm(context.Background(), "emp-1", PaymentConfirmation{
			OrderID: "order_test", PaymentID: "pay_1", Signature: "bogus", Plan: "Silver",
		})

		assert.ErrorIs(t, err, ErrPaymentFailed)
		employers.AssertNotCalled(t, "ApplyPlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("verified payment activates the plan", func(t *testing.T) {
		gw := &fakeGateway{}
		employers := new(mocks.MockEmployerRepository)
		employers.On("ApplyPlan", mock.Anything, "emp-1", "Silver", 50,
			mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil)
		employers.On("FindByID", mock.Anything, "emp-1").Return(&model.Employer{
			ID: "emp-1", Email: "hr@acme.com", Plan: "Silver",
			SubscriptionStatus: model.SubscriptionActive, AllowedResume: 50,
		}, nil)

		svc := NewPaymentService(gw, employers, nil)
		e, err := svc.Confirm(context.Background(), "emp-1", PaymentConfirmation{
			OrderID: "order_test", PaymentID: "pay_1", Signature: "good", Plan: "Silver",
		})

		require.NoError(t, err)
		assert.Equal(t, model.SubscriptionActive, e.SubscriptionStatus)
		employers.AssertExpectations(t)
	})
}
