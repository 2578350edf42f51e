package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/cache"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateNotification est le point d'entrée unique pour émettre une
// notification. Les appelants la traitent toujours en best-effort :
// l'échec est loggé, jamais propagé au chemin principal.
func CreateNotification(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	if n.Priority == "" {
		n.Priority = models.PriorityNormal
	}
	n.IsRead = false
	n.CreatedAt = time.Now()

	if _, err := database.MongoUsersDB.Collection("notifications").InsertOne(ctx, n); err != nil {
		return err
	}

	// Réveille le flux websocket de l'utilisateur
	cache.PublishNotification(n.UserID)

	log.Printf("🔔 Notification %s créée pour %s", n.Type, n.UserID)
	return nil
}

// OrderStatusMessage : mapping fixe statut → message. Un statut inconnu
// retombe sur le message générique.
func OrderStatusMessage(status string) string {
	switch status {
	case models.StatusOrderPlaced:
		return "Your order has been placed and is being processed."
	case models.StatusPacking:
		return "Your order is being packed."
	case models.StatusShipped:
		return "Great news! Your order has been shipped."
	case models.StatusOutForDelivery:
		return "Your order is out for delivery."
	case models.StatusDelivered:
		return "Your order has been delivered. Enjoy!"
	default:
		return fmt.Sprintf("Your order status has been updated to: %s", status)
	}
}

// PaymentStatusMessage : message pour la mise à jour du flag de paiement.
func PaymentStatusMessage(paid bool) string {
	if paid {
		return "Payment received for your order."
	}
	return "Payment status updated for your order."
}

// NotifyOrderStatus émet la notification order_update après un changement
// de statut. Best-effort.
func NotifyOrderStatus(ctx context.Context, userID, orderID, status string) {
	err := CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifOrderUpdate,
		Title:   "Order update",
		Message: OrderStatusMessage(status),
		OrderID: orderID,
		Metadata: map[string]interface{}{
			"status": status,
		},
	})
	if err != nil {
		log.Printf("⚠️ Erreur notification statut commande %s: %v", orderID, err)
	}
}

// NotifyPaymentStatus émet la notification payment_update. Best-effort.
func NotifyPaymentStatus(ctx context.Context, userID, orderID string, paid bool) {
	err := CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifPaymentUpdate,
		Title:   "Payment update",
		Message: PaymentStatusMessage(paid),
		OrderID: orderID,
		Metadata: map[string]interface{}{
			"payment": paid,
		},
	})
	if err != nil {
		log.Printf("⚠️ Erreur notification paiement commande %s: %v", orderID, err)
	}
}

// NotifyOrderPlaced émet la notification de confirmation de commande. Best-effort.
func NotifyOrderPlaced(ctx context.Context, userID, orderID string, amount float64) {
	err := CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifOrderUpdate,
		Title:   "Order placed",
		Message: OrderStatusMessage(models.StatusOrderPlaced),
		OrderID: orderID,
		Metadata: map[string]interface{}{
			"amount": amount,
		},
	})
	if err != nil {
		log.Printf("⚠️ Erreur notification commande %s: %v", orderID, err)
	}
}
