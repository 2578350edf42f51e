package services

import (
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func alertItem(enabled bool, target, lastNotified float64) models.WishlistItem {
	return models.WishlistItem{
		ProductID: "p1",
		PriceAlert: models.PriceAlert{
			Enabled:           enabled,
			TargetPrice:       target,
			LastNotifiedPrice: lastNotified,
		},
	}
}

func TestShouldNotifyPriceDrop(t *testing.T) {
	// Alerte désactivée : jamais de notification
	assert.False(t, ShouldNotifyPriceDrop(alertItem(false, 900, 0), 800))

	// Prix cible atteint
	assert.True(t, ShouldNotifyPriceDrop(alertItem(true, 900, 0), 800))
	assert.True(t, ShouldNotifyPriceDrop(alertItem(true, 900, 0), 900))

	// Prix encore au-dessus de la cible
	assert.False(t, ShouldNotifyPriceDrop(alertItem(true, 900, 0), 950))

	// Sans prix cible, toute baisse notifie
	assert.True(t, ShouldNotifyPriceDrop(alertItem(true, 0, 0), 999))
}

func TestShouldNotifyPriceDropNoRepeat(t *testing.T) {
	// Déjà notifié à ce prix : pas de doublon
	assert.False(t, ShouldNotifyPriceDrop(alertItem(true, 900, 800), 800))

	// Même prix à un chouïa près (erreurs d'arrondi flottant)
	assert.False(t, ShouldNotifyPriceDrop(alertItem(true, 900, 800), 800.005))

	// Nouvelle baisse franche : on renotifie
	assert.True(t, ShouldNotifyPriceDrop(alertItem(true, 900, 800), 750))
}

func TestPriceAlmostEqual(t *testing.T) {
	assert.True(t, PriceAlmostEqual(799.99, 799.99))
	assert.True(t, PriceAlmostEqual(800, 800.005))
	assert.False(t, PriceAlmostEqual(800, 800.02))
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 20.0, DiscountPercent(1000, 800))
	assert.Equal(t, 50.0, DiscountPercent(200, 100))
	assert.Equal(t, 0.0, DiscountPercent(0, 100))
	assert.Equal(t, 33.0, DiscountPercent(300, 200)) // arrondi
}
