package payement

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"
	"github.com/Ashu2380/mykart-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlaceOrder crée une commande en paiement à la livraison (COD).
// Le panier est vidé dans tous les cas après insertion, pas de rollback.
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Items        []models.OrderItem   `json:"items" binding:"required"`
		Amount       float64              `json:"amount" binding:"required"`
		Address      models.Address       `json:"address" binding:"required"`
		SplitPayment *models.SplitPayment `json:"splitPayment"`
		DeliverySlot *models.DeliverySlot `json:"deliverySlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order data"})
		return
	}
	if len(input.Items) == 0 || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order data"})
		return
	}
	if err := ValidateSplitPayment(input.SplitPayment, input.Amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	order := models.Order{
		ID:            primitive.NewObjectID().Hex(),
		UserID:        userID,
		Items:         input.Items,
		Amount:        input.Amount,
		Address:       input.Address,
		PaymentMethod: models.PaymentCOD,
		Payment:       false,
		Status:        models.StatusOrderPlaced,
		SplitPayment:  input.SplitPayment,
		DeliverySlot:  input.DeliverySlot,
		Date:          time.Now(),
	}

	if _, err := database.MongoOrdersDB.Collection("orders").InsertOne(ctx, order); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
		return
	}
	log.Printf("📦 Commande %s créée (COD, %.2f) pour %s", order.ID, order.Amount, userID)

	clearCart(ctx, userID)
	services.NotifyOrderPlaced(ctx, userID, order.ID, order.Amount)

	// Email de confirmation en arrière-plan, jamais bloquant.
	go func(o models.Order, uid string) {
		bg, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var user models.User
		if err := database.MongoUsersDB.Collection("users").
			FindOne(bg, bson.M{"_id": uid}).Decode(&user); err != nil {
			return
		}
		if err := utils.SendEmail(user.Email, "Your MyKart order is confirmed!",
			utils.GenerateOrderConfirmationHTML(o)); err != nil {
			log.Printf("⚠️ Email confirmation non envoyé à %s: %v", user.Email, err)
		}
	}(order, userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Placed", "orderId": order.ID})
}

// UserOrders renvoie l'historique des commandes de l'utilisateur connecté.
func UserOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := database.MongoOrdersDB.Collection("orders").
		Find(ctx, bson.M{"user_id": userID}, opts)
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
