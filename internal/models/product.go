package models

import "time"

type Product struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Price       float64  `bson:"price" json:"price"`
	Category    string   `bson:"category" json:"category"`
	SubCategory string   `bson:"sub_category" json:"subCategory"`
	Sizes       []string `bson:"sizes" json:"sizes"`
	DiscountPct float64  `bson:"discount_pct" json:"discountPct"`
	Bestseller  bool     `bson:"bestseller" json:"bestseller"`
	Images      []string `bson:"images" json:"images"`

	// Champs dérivés : recalculés depuis les avis approuvés, jamais écrits directement.
	AverageRating      float64        `bson:"average_rating" json:"averageRating"`
	TotalReviews       int            `bson:"total_reviews" json:"totalReviews"`
	RatingDistribution map[string]int `bson:"rating_distribution" json:"ratingDistribution"`

	Date time.Time `bson:"date" json:"date"`
}
