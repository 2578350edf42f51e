package user

import (
	"context"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Le panier vit sur le document utilisateur : itemId → taille → quantité.
// Il est vidé ({}) par le flux de commande, quel que soit le sort des
// effets secondaires (parrainage, notifications).

// GetCart retourne le panier de l'utilisateur connecté.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.CartData == nil {
		user.CartData = map[string]map[string]int{}
	}

	c.JSON(http.StatusOK, gin.H{"cartData": user.CartData})
}

// AddToCart ajoute une unité d'un article (produit + taille).
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ItemID string `json:"itemId" binding:"required"`
		Size   string `json:"size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	users := database.MongoUsersDB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Vérifie que le produit existe toujours au catalogue
	count, err := database.MongoProductsDB.Collection("products").
		CountDocuments(ctx, bson.M{"_id": input.ItemID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cart := user.CartData
	if cart == nil {
		cart = map[string]map[string]int{}
	}
	if cart[input.ItemID] == nil {
		cart[input.ItemID] = map[string]int{}
	}
	cart[input.ItemID][input.Size]++

	if _, err := users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart_data": cart}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cartData": cart})
}

// UpdateCart fixe la quantité d'un article (0 le retire).
func UpdateCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ItemID   string `json:"itemId" binding:"required"`
		Size     string `json:"size" binding:"required"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || *input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	users := database.MongoUsersDB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	cart := user.CartData
	if cart == nil {
		cart = map[string]map[string]int{}
	}

	if *input.Quantity == 0 {
		if sizes, ok := cart[input.ItemID]; ok {
			delete(sizes, input.Size)
			if len(sizes) == 0 {
				delete(cart, input.ItemID)
			}
		}
	} else {
		if cart[input.ItemID] == nil {
			cart[input.ItemID] = map[string]int{}
		}
		cart[input.ItemID][input.Size] = *input.Quantity
	}

	if _, err := users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart_data": cart}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cartData": cart})
}
