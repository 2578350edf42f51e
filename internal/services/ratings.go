package services

import (
	"context"
	"log"
	"strconv"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RecomputeProductRating recalcule les champs dérivés du produit
// (averageRating, totalReviews, ratingDistribution) depuis l'ensemble des
// avis approuvés. Appelé à chaque ajout, modération ou suppression d'avis —
// jamais écrit directement ailleurs.
func RecomputeProductRating(ctx context.Context, productID string) error {
	reviews := database.MongoProductsDB.Collection("reviews")

	cursor, err := reviews.Find(ctx, bson.M{
		"product_id": productID,
		"status":     models.ReviewApproved,
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	total := 0
	sum := 0
	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}

	for cursor.Next(ctx) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			continue
		}
		if review.Rating < 1 || review.Rating > 5 {
			continue
		}
		total++
		sum += review.Rating
		distribution[strconv.Itoa(review.Rating)]++
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	average := 0.0
	if total > 0 {
		average = float64(sum) / float64(total)
	}

	_, err = database.MongoProductsDB.Collection("products").UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"average_rating":      average,
			"total_reviews":       total,
			"rating_distribution": distribution,
		}},
	)
	if err != nil {
		return err
	}

	log.Printf("⭐ Note produit %s recalculée: %.2f (%d avis)", productID, average, total)
	return nil
}
