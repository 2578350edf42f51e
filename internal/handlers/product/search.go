package product

import (
	"net/http"
	"strconv"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchProducts interroge Elasticsearch et retombe sur une recherche
// Mongo par regex si le cluster est indisponible.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	ctx := c.Request.Context()

	products, err := services.SearchProducts(ctx, query, limit)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "source": "elasticsearch"})
		return
	}

	// Repli Mongo : regex insensible à la casse sur nom et catégorie.
	pattern := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"category": pattern},
		{"sub_category": pattern},
		{"description": pattern},
	}}

	cursor, err := database.MongoProductsDB.Collection("products").
		Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Search failed"})
		return
	}
	defer cursor.Close(ctx)

	results := []models.Product{}
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": results, "source": "mongodb"})
}
