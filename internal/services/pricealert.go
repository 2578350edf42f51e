package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// priceEpsilon : tolérance de comparaison des prix en virgule flottante.
// Une égalité stricte raterait les re-sauvegardes à prix identique.
const priceEpsilon = 0.01

// PriceAlmostEqual compare deux prix avec tolérance.
func PriceAlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < priceEpsilon
}

// ShouldNotifyPriceDrop décide si un article de wishlist mérite une alerte
// pour le nouveau prix :
//   - l'alerte doit être activée ;
//   - sans prix cible, toute baisse notifie ; sinon le nouveau prix doit
//     être ≤ au prix cible ;
//   - un prix déjà notifié ne re-notifie pas (anti-doublon).
func ShouldNotifyPriceDrop(item models.WishlistItem, newPrice float64) bool {
	alert := item.PriceAlert
	if !alert.Enabled {
		return false
	}
	if alert.TargetPrice > 0 && newPrice > alert.TargetPrice {
		return false
	}
	if PriceAlmostEqual(alert.LastNotifiedPrice, newPrice) {
		return false
	}
	return true
}

// DiscountPercent calcule la remise affichée dans l'alerte.
func DiscountPercent(oldPrice, newPrice float64) float64 {
	if oldPrice <= 0 {
		return 0
	}
	return math.Round((oldPrice - newPrice) / oldPrice * 100)
}

// EvaluatePriceAlerts parcourt les wishlists contenant ce produit avec une
// alerte active et notifie les baisses de prix. Déclenché par la mise à
// jour admin d'un produit dont le prix baisse. Best-effort.
func EvaluatePriceAlerts(ctx context.Context, product models.Product, oldPrice, newPrice float64) {
	users := database.MongoUsersDB.Collection("users")

	cursor, err := users.Find(ctx, bson.M{
		"wishlist": bson.M{"$elemMatch": bson.M{
			"product_id":          product.ID,
			"price_alert.enabled": true,
		}},
	})
	if err != nil {
		log.Printf("⚠️ Erreur recherche alertes prix %s: %v", product.ID, err)
		return
	}
	defer cursor.Close(ctx)

	notified := 0
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}

		for _, item := range user.Wishlist {
			if item.ProductID != product.ID {
				continue
			}
			if !ShouldNotifyPriceDrop(item, newPrice) {
				continue
			}

			err := CreateNotification(ctx, models.Notification{
				UserID:    user.ID,
				Type:      models.NotifPriceAlert,
				Title:     "Price drop alert",
				Message:   fmt.Sprintf("%s is now ₹%.2f (was ₹%.2f) — %d%% off!", product.Name, newPrice, oldPrice, int(DiscountPercent(oldPrice, newPrice))),
				ProductID: product.ID,
				Priority:  models.PriorityHigh,
				Metadata: map[string]interface{}{
					"old_price":        oldPrice,
					"new_price":        newPrice,
					"discount_percent": DiscountPercent(oldPrice, newPrice),
				},
			})
			if err != nil {
				log.Printf("⚠️ Erreur alerte prix pour %s: %v", user.ID, err)
				continue
			}

			// Mémorise le prix notifié (opérateur positionnel sur l'entrée wishlist)
			_, err = users.UpdateOne(ctx,
				bson.M{"_id": user.ID, "wishlist.product_id": product.ID},
				bson.M{"$set": bson.M{
					"wishlist.$.price_alert.last_notified_price": newPrice,
				}},
			)
			if err != nil {
				log.Printf("⚠️ Erreur mise à jour last_notified_price pour %s: %v", user.ID, err)
			}
			notified++
		}
	}

	if notified > 0 {
		log.Printf("📉 Alerte prix %s: %d utilisateur(s) notifié(s) (₹%.2f → ₹%.2f)",
			product.Name, notified, oldPrice, newPrice)
	}
}
