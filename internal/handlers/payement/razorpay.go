package payement

import (
	"context"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PlaceOrderRazorpay crée la commande en attente puis la commande Razorpay
// associée (montant en paise, receipt = id de notre commande).
func PlaceOrderRazorpay(c *gin.Context) {
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
		PaymentMethod: models.PaymentRazorpay,
		Payment:       false,
		Status:        models.StatusOrderPlaced,
		SplitPayment:  input.SplitPayment,
		DeliverySlot:  input.DeliverySlot,
		Date:          time.Now(),
	}

	if _, err := database.MongoOrdersDB.Collection("orders").InsertOne(ctx, order); err != nil {
		log.Printf("❌ Erreur création commande Razorpay: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
		return
	}

	amountPaise := int64(math.Round(input.Amount * 100))
	rzpOrder, err := services.CreateRazorpayOrder(amountPaise, order.ID)
	if err != nil {
		log.Printf("❌ Erreur Razorpay pour la commande %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create payment order"})
		return
	}

	rzpOrderID, _ := rzpOrder["id"].(string)
	_, err = database.MongoOrdersDB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"razorpay_order_id": rzpOrderID}},
	)
	if err != nil {
		log.Printf("⚠️ Erreur liaison commande Razorpay %s: %v", order.ID, err)
	}

	log.Printf("💳 Commande Razorpay %s créée pour %s (commande %s)", rzpOrderID, userID, order.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": rzpOrder})
}

// VerifyRazorpay vérifie le statut d'un paiement directement auprès de la
// passerelle. Seul le statut renvoyé par Razorpay fait foi, jamais le client.
func VerifyRazorpay(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "razorpay_order_id is required"})
		return
	}

	rzpOrder, err := services.FetchRazorpayOrder(input.RazorpayOrderID)
	if err != nil {
		log.Printf("❌ Erreur vérification Razorpay %s: %v", input.RazorpayOrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify payment"})
		return
	}

	status, _ := rzpOrder["status"].(string)
	if status != "paid" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment not completed"})
		return
	}

	// Le receipt porte l'id de notre commande.
	receipt, _ := rzpOrder["receipt"].(string)
	if receipt == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment verification mismatch"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	// Montant authentique renvoyé par la passerelle, en paise.
	var orderAmount float64
	if amountPaise, ok := rzpOrder["amount"].(float64); ok {
		orderAmount = amountPaise / 100
	}

	alreadyPaid, err := finalizePaidOrder(ctx, userID, receipt, orderAmount)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if alreadyPaid {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment already verified"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}

// finalizePaidOrder bascule la commande en payée et ne déclenche les effets
// de bord (vidage panier, notification, parrainage) qu'à la première
// bascule : revérifier un paiement déjà enregistré ne revide pas le panier
// et ne renotifie pas.
func finalizePaidOrder(ctx context.Context, userID, orderID string, orderAmount float64) (alreadyPaid bool, err error) {
	res, err := database.MongoOrdersDB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": orderID, "user_id": userID, "payment": false},
		bson.M{"$set": bson.M{"payment": true}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		// Rien à basculer : commande déjà payée ou inconnue.
		order, err := loadOrder(ctx, orderID)
		if err != nil || order.UserID != userID {
			return false, mongo.ErrNoDocuments
		}
		return true, nil
	}
	log.Printf("✅ Paiement confirmé pour la commande %s", orderID)

	clearCart(ctx, userID)
	services.NotifyPaymentStatus(ctx, userID, orderID, true)

	if orderAmount > 0 {
		if err := services.ProcessReferralReward(ctx, userID, orderAmount); err != nil {
			log.Printf("⚠️ Erreur récompense parrainage pour %s: %v", userID, err)
		}
	}

	return false, nil
}
