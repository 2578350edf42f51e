package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

// Dashboard agrège les chiffres clés du back-office : commandes et chiffre
// d'affaires par statut, panier moyen, volumes, et top produits par unités.
func Dashboard(c *gin.Context) {
	ctx, cancel := opCtx()
	defer cancel()

	orders := database.MongoOrdersDB.Collection("orders")

	// Commandes et CA groupés par statut.
	byStatus := []bson.M{}
	cursor, err := orders.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$amount"},
		}},
		{"$sort": bson.M{"count": -1}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute analytics"})
		return
	}
	if err := cursor.All(ctx, &byStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute analytics"})
		return
	}

	// Totaux et panier moyen sur les commandes payées.
	totals := []struct {
		Count   int     `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}{}
	cursor, err = orders.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"payment": true}},
		{"$group": bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$amount"},
		}},
	})
	if err == nil {
		_ = cursor.All(ctx, &totals)
	}

	var paidCount int
	var paidRevenue, averageOrderValue float64
	if len(totals) > 0 {
		paidCount = totals[0].Count
		paidRevenue = totals[0].Revenue
		if paidCount > 0 {
			averageOrderValue = paidRevenue / float64(paidCount)
		}
	}

	// Top produits par unités vendues.
	topProducts := []bson.M{}
	cursor, err = orders.Aggregate(ctx, []bson.M{
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":   "$items.product_id",
			"name":  bson.M{"$first": "$items.name"},
			"units": bson.M{"$sum": "$items.quantity"},
		}},
		{"$sort": bson.M{"units": -1}},
		{"$limit": 10},
	})
	if err == nil {
		_ = cursor.All(ctx, &topProducts)
	}

	totalOrders, _ := orders.CountDocuments(ctx, bson.M{})
	totalUsers, _ := database.MongoUsersDB.Collection("users").CountDocuments(ctx, bson.M{})
	totalProducts, _ := database.MongoProductsDB.Collection("products").CountDocuments(ctx, bson.M{})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"analytics": gin.H{
			"totalOrders":       totalOrders,
			"totalUsers":        totalUsers,
			"totalProducts":     totalProducts,
			"paidOrders":        paidCount,
			"paidRevenue":       paidRevenue,
			"averageOrderValue": averageOrderValue,
			"ordersByStatus":    byStatus,
			"topProducts":       topProducts,
		},
	})
}

// ListFeedback renvoie les retours utilisateurs, plus récents d'abord.
func ListFeedback(c *gin.Context) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoUsersDB.Collection("feedback").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}
	defer cursor.Close(ctx)

	feedback := []models.Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}
