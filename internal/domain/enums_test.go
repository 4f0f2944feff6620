package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPlaced, OrderStatusPacked, true},
		{OrderStatusPacked, OrderStatusOnTheWay, true},
		{OrderStatusOnTheWay, OrderStatusReachedLocation, true},
		{OrderStatusReachedLocation, OrderStatusDelivered, true},
		{OrderStatusPlaced, OrderStatusCancelled, true},
		{OrderStatusOnTheWay, OrderStatusCancelled, true},
		{"", OrderStatusPacked, true},
		{OrderStatusPacked, OrderStatusPacked, true},

		{OrderStatusPlaced, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusPlaced, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPlaced, false},
		{OrderStatusPlaced, "Shipped", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodCOD.IsValid())
	assert.True(t, PaymentMethodQR.IsValid())
	assert.False(t, PaymentMethod("card").IsValid())
	assert.Equal(t, "Cash on Delivery", PaymentMethodCOD.Label())
	assert.Equal(t, "Pay via QR Code", PaymentMethodQR.Label())
}
