package product

import (
	"log"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const browsingHistoryWindow = 20

// Recommendations propose des produits à partir de l'historique de
// navigation et de la wishlist. Sans signal, on retombe sur les bestsellers.
func Recommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if err != nil || limit <= 0 || limit > 50 {
		limit = 8
	}

	ctx, cancel := opCtx()
	defer cancel()

	// Signal 1 : produits consultés récemment.
	seen := map[string]bool{}
	var corpus strings.Builder

	histOpts := options.Find().
		SetSort(bson.D{{Key: "viewed_at", Value: -1}}).
		SetLimit(browsingHistoryWindow)
	if cursor, err := database.MongoUsersDB.Collection("browsing_history").
		Find(ctx, bson.M{"user_id": userID}, histOpts); err == nil {
		var history []models.BrowsingHistory
		if err := cursor.All(ctx, &history); err == nil {
			for _, h := range history {
				seen[h.ProductID] = true
				corpus.WriteString(h.Category)
				corpus.WriteString(" ")
			}
		}
	}

	// Signal 2 : wishlist.
	var user models.User
	if err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
		for _, item := range user.Wishlist {
			seen[item.ProductID] = true
		}
	}

	// Enrichit le corpus avec les noms et catégories des produits déjà vus.
	if len(seen) > 0 {
		ids := make([]string, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		if cursor, err := database.MongoProductsDB.Collection("products").
			Find(ctx, bson.M{"_id": bson.M{"$in": ids}}); err == nil {
			var viewed []models.Product
			if err := cursor.All(ctx, &viewed); err == nil {
				for _, p := range viewed {
					corpus.WriteString(p.Name + " " + p.Category + " " + p.SubCategory + " ")
				}
			}
		}
	}

	keywords := services.ExtractKeywords(corpus.String())

	cursor, err := database.MongoProductsDB.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch recommendations"})
		return
	}
	defer cursor.Close(ctx)

	var all []models.Product
	if err := cursor.All(ctx, &all); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch recommendations"})
		return
	}

	type scored struct {
		product models.Product
		score   int
	}
	candidates := []scored{}
	for _, p := range all {
		if seen[p.ID] {
			continue
		}
		if s := services.ScoreProduct(keywords, p); s > 0 {
			candidates = append(candidates, scored{p, s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	recommendations := []models.Product{}
	for _, cand := range candidates {
		recommendations = append(recommendations, cand.product)
		if len(recommendations) >= limit {
			break
		}
	}

	// Pas assez de signal : on complète avec des bestsellers non vus.
	if len(recommendations) < limit {
		already := map[string]bool{}
		for _, p := range recommendations {
			already[p.ID] = true
		}
		for _, p := range all {
			if len(recommendations) >= limit {
				break
			}
			if p.Bestseller && !seen[p.ID] && !already[p.ID] {
				recommendations = append(recommendations, p)
			}
		}
	}

	// Un peu de variété entre deux visites.
	rand.Shuffle(len(recommendations), func(i, j int) {
		recommendations[i], recommendations[j] = recommendations[j], recommendations[i]
	})

	log.Printf("🤝 %d recommandations pour %s (%d mots-clés)", len(recommendations), userID, len(keywords))
	c.JSON(http.StatusOK, gin.H{"success": true, "products": recommendations})
}
