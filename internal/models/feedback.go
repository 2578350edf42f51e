package models

import "time"

type Feedback struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Subject   string    `bson:"subject" json:"subject"`
	Message   string    `bson:"message" json:"message"`
	Rating    int       `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BrowsingHistory alimente les recommandations heuristiques.
type BrowsingHistory struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	ProductID string    `bson:"product_id" json:"productId"`
	Category  string    `bson:"category" json:"category"`
	ViewedAt  time.Time `bson:"viewed_at" json:"viewedAt"`
}
