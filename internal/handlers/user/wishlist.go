package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/cache"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetWishlist retourne la wishlist enrichie des produits (cache Redis 10 min).
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	cacheKey := "wishlist:" + userID
	if cached, err := cache.GetCache(cacheKey); err == nil {
		var payload gin.H
		if json.Unmarshal([]byte(cached), &payload) == nil {
			c.JSON(http.StatusOK, payload)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Récupérer les détails des produits encore au catalogue
	ids := make([]string, 0, len(user.Wishlist))
	for _, item := range user.Wishlist {
		ids = append(ids, item.ProductID)
	}

	products := map[string]models.Product{}
	if len(ids) > 0 {
		cursor, err := database.MongoProductsDB.Collection("products").
			Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err == nil {
			defer cursor.Close(ctx)
			for cursor.Next(ctx) {
				var p models.Product
				if cursor.Decode(&p) == nil {
					products[p.ID] = p
				}
			}
		}
	}

	type entry struct {
		models.WishlistItem
		Product *models.Product `json:"product,omitempty"`
	}

	items := make([]entry, 0, len(user.Wishlist))
	for _, item := range user.Wishlist {
		e := entry{WishlistItem: item}
		if p, ok := products[item.ProductID]; ok {
			e.Product = &p
		}
		items = append(items, e)
	}

	payload := gin.H{"wishlist": items}
	if data, err := json.Marshal(payload); err == nil {
		_ = cache.SetCache(cacheKey, data, 10*time.Minute)
	}

	c.JSON(http.StatusOK, payload)
}

// AddToWishlist ajoute un produit à la wishlist (sans alerte prix par défaut).
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wishlist data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Vérifier que le produit existe
	count, err := database.MongoProductsDB.Collection("products").
		CountDocuments(ctx, bson.M{"_id": req.ProductID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	users := database.MongoUsersDB.Collection("users")

	// $addToSet ne marche pas ici (added_at varie) : on filtre l'absence
	res, err := users.UpdateOne(ctx,
		bson.M{"_id": userID, "wishlist.product_id": bson.M{"$ne": req.ProductID}},
		bson.M{"$push": bson.M{"wishlist": models.WishlistItem{
			ProductID: req.ProductID,
			AddedAt:   time.Now(),
		}}},
	)
	if err != nil {
		log.Printf("❌ Erreur ajout wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update wishlist"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
		return
	}

	_ = cache.DeleteCache("wishlist:" + userID)

	log.Printf("⭐ Produit %s ajouté à la wishlist de %s", req.ProductID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist", "productId": req.ProductID})
}

// RemoveFromWishlist retire un produit de la wishlist
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.MongoUsersDB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"wishlist": bson.M{"product_id": req.ProductID}}},
	)
	if err != nil {
		log.Printf("❌ Erreur suppression wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update wishlist"})
		return
	}
	if res.ModifiedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not in wishlist"})
		return
	}

	_ = cache.DeleteCache("wishlist:" + userID)

	log.Printf("🗑️ Produit %s retiré de la wishlist de %s", req.ProductID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "productId": req.ProductID})
}

// SetPriceAlert active/désactive l'alerte prix d'un article de la wishlist.
// targetPrice = 0 notifie sur n'importe quelle baisse.
func SetPriceAlert(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID   string  `json:"productId" binding:"required"`
		Enabled     bool    `json:"enabled"`
		TargetPrice float64 `json:"targetPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price alert data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.MongoUsersDB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID, "wishlist.product_id": req.ProductID},
		bson.M{"$set": bson.M{
			"wishlist.$.price_alert.enabled":      req.Enabled,
			"wishlist.$.price_alert.target_price": req.TargetPrice,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update price alert"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not in wishlist"})
		return
	}

	_ = cache.DeleteCache("wishlist:" + userID)

	c.JSON(http.StatusOK, gin.H{"message": "Price alert updated"})
}
