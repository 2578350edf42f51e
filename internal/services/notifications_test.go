package services

import (
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusMessage(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{models.StatusOrderPlaced, "Your order has been placed and is being processed."},
		{models.StatusPacking, "Your order is being packed."},
		{models.StatusShipped, "Great news! Your order has been shipped."},
		{models.StatusOutForDelivery, "Your order is out for delivery."},
		{models.StatusDelivered, "Your order has been delivered. Enjoy!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, OrderStatusMessage(tt.status), tt.status)
	}
}

func TestOrderStatusMessageUnknownStatus(t *testing.T) {
	// Un statut libre posé par l'admin passe par le message générique.
	assert.Equal(t,
		"Your order status has been updated to: Backordered",
		OrderStatusMessage("Backordered"))
}

func TestPaymentStatusMessage(t *testing.T) {
	assert.Equal(t, "Payment received for your order.", PaymentStatusMessage(true))
	assert.Equal(t, "Payment status updated for your order.", PaymentStatusMessage(false))
}
