package payement

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SplitTolerance : les deux parts d'un paiement partagé doivent retomber
// sur le montant total à une unité monétaire près (arrondis côté client).
const SplitTolerance = 1.0

// ValidateSplitPayment vérifie que payer1 + payer2 == amount (tolérance 1).
func ValidateSplitPayment(split *models.SplitPayment, amount float64) error {
	if split == nil {
		return nil
	}
	if split.Payer1.Amount < 0 || split.Payer2.Amount < 0 {
		return fmt.Errorf("split amounts mismatch")
	}
	sum := split.Payer1.Amount + split.Payer2.Amount
	if math.Abs(sum-amount) > SplitTolerance {
		return fmt.Errorf("split amounts mismatch")
	}
	return nil
}

// clearCart vide le panier de l'utilisateur après une commande réussie.
// Pas de compensation si ça échoue : on logge et la commande reste valide.
func clearCart(ctx context.Context, userID string) {
	_, err := database.MongoUsersDB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart_data": map[string]map[string]int{}}},
	)
	if err != nil {
		log.Printf("⚠️ Erreur vidage panier %s: %v", userID, err)
		return
	}
	log.Printf("🧹 Panier vidé pour %s", userID)
}

// loadOrder retrouve une commande par son id.
func loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := database.MongoOrdersDB.Collection("orders").
		FindOne(ctx, bson.M{"_id": orderID}).
		Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
