package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// hasPurchased : vrai si l'utilisateur a une commande payée contenant ce produit.
func hasPurchased(ctx context.Context, userID, productID string) bool {
	count, err := database.MongoOrdersDB.Collection("orders").CountDocuments(ctx, bson.M{
		"user_id":          userID,
		"payment":          true,
		"items.product_id": productID,
	})
	if err != nil {
		log.Printf("⚠️ Erreur vérification achat %s/%s: %v", userID, productID, err)
		return false
	}
	return count > 0
}

// CreateReview dépose un avis en attente de modération. Un seul avis par
// couple utilisateur/produit, le badge "achat vérifié" vient des commandes payées.
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string   `json:"productId" binding:"required"`
		Rating    int      `json:"rating" binding:"required,min=1,max=5"`
		Title     string   `json:"title"`
		Comment   string   `json:"comment" binding:"required"`
		Images    []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid review data"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	var product models.Product
	if err := database.MongoProductsDB.Collection("products").
		FindOne(ctx, bson.M{"_id": input.ProductID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	var user models.User
	if err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	review := models.Review{
		ID:        primitive.NewObjectID().Hex(),
		ProductID: input.ProductID,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		Images:    input.Images,
		Verified:  hasPurchased(ctx, userID, input.ProductID),
		Status:    models.ReviewPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := database.MongoProductsDB.Collection("reviews").InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "You have already reviewed this product"})
			return
		}
		log.Printf("❌ Erreur création avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit review"})
		return
	}
	log.Printf("⭐ Avis %s déposé sur %s par %s", review.ID, input.ProductID, userID)

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Review submitted for moderation", "reviewId": review.ID})
}

// GetProductReviews liste les avis approuvés d'un produit, plus récents d'abord.
func GetProductReviews(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoProductsDB.Collection("reviews").
		Find(ctx, bson.M{"product_id": productID, "status": models.ReviewApproved}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews"})
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// PendingReviews liste les avis en attente de modération (back-office).
func PendingReviews(c *gin.Context) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := database.MongoProductsDB.Collection("reviews").
		Find(ctx, bson.M{"status": models.ReviewPending}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews"})
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// ModerateReview approuve ou rejette un avis, avec réponse admin optionnelle.
// Les notes dérivées du produit sont recalculées après chaque décision.
func ModerateReview(c *gin.Context) {
	var input struct {
		ReviewID      string `json:"reviewId" binding:"required"`
		Status        string `json:"status" binding:"required"`
		AdminResponse string `json:"adminResponse"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reviewId and status are required"})
		return
	}
	if input.Status != models.ReviewApproved && input.Status != models.ReviewRejected {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status must be approved or rejected"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	update := bson.M{"status": input.Status, "updated_at": time.Now()}
	if input.AdminResponse != "" {
		update["admin_response"] = input.AdminResponse
	}

	var review models.Review
	err := database.MongoProductsDB.Collection("reviews").FindOneAndUpdate(ctx,
		bson.M{"_id": input.ReviewID},
		bson.M{"$set": update},
	).Decode(&review)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		return
	}
	log.Printf("⭐ Avis %s → %s", input.ReviewID, input.Status)

	if err := services.RecomputeProductRating(ctx, review.ProductID); err != nil {
		log.Printf("⚠️ Erreur recalcul notes %s: %v", review.ProductID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review moderated"})
}

// DeleteReview supprime un avis — l'auteur pour le sien, l'admin pour
// n'importe lequel — et recalcule les notes du produit.
func DeleteReview(c *gin.Context) {
	var input struct {
		ReviewID string `json:"reviewId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reviewId is required"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	filter := bson.M{"_id": input.ReviewID}
	if c.GetString("role") != "admin" {
		filter["user_id"] = c.GetString("user_id")
	}

	var review models.Review
	err := database.MongoProductsDB.Collection("reviews").
		FindOneAndDelete(ctx, filter).Decode(&review)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		return
	}
	log.Printf("🗑️ Avis %s supprimé", input.ReviewID)

	if err := services.RecomputeProductRating(ctx, review.ProductID); err != nil {
		log.Printf("⚠️ Erreur recalcul notes %s: %v", review.ProductID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
