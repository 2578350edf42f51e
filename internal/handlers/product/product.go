package product

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/cache"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productListCacheKey = "products:list"
	productListCacheTTL = 5 * time.Minute
)

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func invalidateProductCache() {
	if err := cache.DeleteCache(productListCacheKey); err != nil {
		log.Printf("⚠️ Erreur invalidation cache produits: %v", err)
	}
}

// AddProduct crée un produit avec jusqu'à 4 images stockées sur MinIO.
// Une image qui échoue à l'upload est simplement ignorée.
func AddProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")
	category := c.PostForm("category")
	subCategory := c.PostForm("subCategory")
	sizesStr := c.PostForm("sizes")
	bestseller := c.PostForm("bestseller") == "true"

	if name == "" || priceStr == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name, price and category are required"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	var sizes []string
	if sizesStr != "" {
		if err := json.Unmarshal([]byte(sizesStr), &sizes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid sizes"})
			return
		}
	}

	images := []string{}
	for i := 1; i <= 4; i++ {
		file, err := c.FormFile(fmt.Sprintf("image%d", i))
		if err != nil {
			continue
		}
		url, err := services.UploadProductImage(file)
		if err != nil {
			log.Printf("⚠️ Upload image%d échoué: %v", i, err)
			continue
		}
		images = append(images, url)
	}

	ctx, cancel := opCtx()
	defer cancel()

	product := models.Product{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               name,
		Description:        description,
		Price:              price,
		Category:           category,
		SubCategory:        subCategory,
		Sizes:              sizes,
		Bestseller:         bestseller,
		Images:             images,
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
		Date:               time.Now(),
	}

	if _, err := database.MongoProductsDB.Collection("products").InsertOne(ctx, product); err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add product"})
		return
	}
	log.Printf("📦 Produit %s créé: %s", product.ID, product.Name)

	services.IndexProduct(ctx, product)
	invalidateProductCache()

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Added", "productId": product.ID})
}

// UpdateProduct modifie un produit. Une baisse de prix déclenche
// l'évaluation des alertes de prix en arrière-plan.
func UpdateProduct(c *gin.Context) {
	var input struct {
		ProductID   string   `json:"productId" binding:"required"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		SubCategory *string  `json:"subCategory"`
		Sizes       []string `json:"sizes"`
		DiscountPct *float64 `json:"discountPct"`
		Bestseller  *bool    `json:"bestseller"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "productId is required"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	var existing models.Product
	if err := database.MongoProductsDB.Collection("products").
		FindOne(ctx, bson.M{"_id": input.ProductID}).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	update := bson.M{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
			return
		}
		update["price"] = *input.Price
	}
	if input.Category != nil {
		update["category"] = *input.Category
	}
	if input.SubCategory != nil {
		update["sub_category"] = *input.SubCategory
	}
	if input.Sizes != nil {
		update["sizes"] = input.Sizes
	}
	if input.DiscountPct != nil {
		update["discount_pct"] = *input.DiscountPct
	}
	if input.Bestseller != nil {
		update["bestseller"] = *input.Bestseller
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	if _, err := database.MongoProductsDB.Collection("products").UpdateOne(ctx,
		bson.M{"_id": input.ProductID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	var updated models.Product
	if err := database.MongoProductsDB.Collection("products").
		FindOne(ctx, bson.M{"_id": input.ProductID}).Decode(&updated); err == nil {
		services.IndexProduct(ctx, updated)

		if input.Price != nil && *input.Price < existing.Price {
			log.Printf("📉 Baisse de prix sur %s: %.2f → %.2f", updated.ID, existing.Price, *input.Price)
			go func(p models.Product, oldPrice, newPrice float64) {
				bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				services.EvaluatePriceAlerts(bg, p, oldPrice, newPrice)
			}(updated, existing.Price, *input.Price)
		}
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Updated"})
}

// RemoveProduct supprime un produit et le retire de l'index de recherche.
func RemoveProduct(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "productId is required"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	res, err := database.MongoProductsDB.Collection("products").
		DeleteOne(ctx, bson.M{"_id": input.ProductID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove product"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	log.Printf("🗑️ Produit %s supprimé", input.ProductID)

	services.RemoveProductFromIndex(ctx, input.ProductID)
	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Removed"})
}

// ListProducts renvoie le catalogue complet, servi depuis Redis quand
// le cache est chaud.
func ListProducts(c *gin.Context) {
	if cached, err := cache.GetCache(productListCacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := database.MongoProductsDB.Collection("products").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	payload, err := json.Marshal(gin.H{"success": true, "products": products})
	if err == nil {
		if err := cache.SetCache(productListCacheKey, string(payload), productListCacheTTL); err != nil {
			log.Printf("⚠️ Erreur cache produits: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GetProduct renvoie un produit. Pour un utilisateur connecté, la
// consultation alimente l'historique de navigation (meilleur effort).
func GetProduct(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := opCtx()
	defer cancel()

	var product models.Product
	if err := database.MongoProductsDB.Collection("products").
		FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if userID := c.GetString("user_id"); userID != "" {
		entry := models.BrowsingHistory{
			ID:        primitive.NewObjectID().Hex(),
			UserID:    userID,
			ProductID: product.ID,
			Category:  product.Category,
			ViewedAt:  time.Now(),
		}
		if _, err := database.MongoUsersDB.Collection("browsing_history").InsertOne(ctx, entry); err != nil {
			log.Printf("⚠️ Erreur historique navigation: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
