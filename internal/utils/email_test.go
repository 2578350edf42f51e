package utils

import (
	"testing"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderConfirmationHTML(t *testing.T) {
	order := models.Order{
		ID:     "ord123",
		Amount: 1498,
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Cotton Kurta", Size: "M", Quantity: 2, Price: 749},
		},
		PaymentMethod: models.PaymentCOD,
		Date:          time.Now(),
	}

	html := GenerateOrderConfirmationHTML(order)

	assert.Contains(t, html, "#ord123")
	assert.Contains(t, html, "Cotton Kurta (M)")
	assert.Contains(t, html, "₹1498.00")
	assert.Contains(t, html, models.PaymentCOD)
}

func TestGenerateWelcomeHTML(t *testing.T) {
	html := GenerateWelcomeHTML("Asha")
	assert.Contains(t, html, "Welcome to MyKart, Asha!")
}

func TestSendEmailWithoutConfig(t *testing.T) {
	mailCfg = nil
	err := SendEmail("asha@example.in", "Test", "<p>test</p>")
	assert.Error(t, err)
}
