package payement

import (
	"log"
	"net/http"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AllOrders liste toutes les commandes pour le back-office, les plus
// récentes en premier.
func AllOrders(c *gin.Context) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := database.MongoOrdersDB.Collection("orders").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// UpdateStatus change le statut d'une commande. N'importe quelle chaîne
// est acceptée ("Backordered", etc.) ; les statuts inconnus passent par
// le message de notification générique.
func UpdateStatus(c *gin.Context) {
	var input struct {
		OrderID string `json:"orderId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "orderId and status are required"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	res, err := database.MongoOrdersDB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": input.OrderID},
		bson.M{"$set": bson.M{"status": input.Status}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update status"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	log.Printf("📦 Statut de la commande %s → %s", input.OrderID, input.Status)

	// La mise à jour réussit même si la notification échoue.
	if order, err := loadOrder(ctx, input.OrderID); err == nil {
		services.NotifyOrderStatus(ctx, order.UserID, order.ID, input.Status)
	} else {
		log.Printf("⚠️ Commande %s introuvable pour notification: %v", input.OrderID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status Updated"})
}

// UpdatePaymentStatus bascule l'indicateur de paiement d'une commande.
// Passer à payé déclenche la récompense de parrainage (idempotente),
// c'est le chemin de confirmation des commandes COD.
func UpdatePaymentStatus(c *gin.Context) {
	var input struct {
		OrderID string `json:"orderId" binding:"required"`
		Payment *bool  `json:"payment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "orderId and payment are required"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	order, err := loadOrder(ctx, input.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	_, err = database.MongoOrdersDB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": input.OrderID},
		bson.M{"$set": bson.M{"payment": *input.Payment}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment status"})
		return
	}
	log.Printf("💳 Paiement de la commande %s → %v", input.OrderID, *input.Payment)

	services.NotifyPaymentStatus(ctx, order.UserID, order.ID, *input.Payment)

	if *input.Payment && !order.Payment {
		if err := services.ProcessReferralReward(ctx, order.UserID, order.Amount); err != nil {
			log.Printf("⚠️ Erreur récompense parrainage pour %s: %v", order.UserID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Status Updated"})
}
