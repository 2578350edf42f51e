package payement

import (
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func split(a, b float64) *models.SplitPayment {
	return &models.SplitPayment{
		Payer1: models.SplitShare{Name: "Asha", Amount: a},
		Payer2: models.SplitShare{Name: "Ravi", Amount: b},
	}
}

func TestValidateSplitPaymentExact(t *testing.T) {
	assert.NoError(t, ValidateSplitPayment(split(500, 500), 1000))
}

func TestValidateSplitPaymentTolerance(t *testing.T) {
	// À une unité près : arrondis côté client acceptés
	assert.NoError(t, ValidateSplitPayment(split(499.50, 499.50), 999))
	assert.NoError(t, ValidateSplitPayment(split(500, 499), 1000))
	assert.NoError(t, ValidateSplitPayment(split(500, 501), 1000))
}

func TestValidateSplitPaymentMismatch(t *testing.T) {
	err := ValidateSplitPayment(split(500, 400), 1000)
	assert.Error(t, err)
	assert.EqualError(t, err, "split amounts mismatch")

	assert.Error(t, ValidateSplitPayment(split(500, 502), 1000))
}

func TestValidateSplitPaymentNegativeShare(t *testing.T) {
	assert.Error(t, ValidateSplitPayment(split(1100, -100), 1000))
}

func TestValidateSplitPaymentNil(t *testing.T) {
	// Pas de paiement partagé : rien à valider
	assert.NoError(t, ValidateSplitPayment(nil, 1000))
}
