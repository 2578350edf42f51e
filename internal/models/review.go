package models

import "time"

// Statuts de modération d'un avis
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review : un seul avis par couple (utilisateur, produit) — index unique
// en base + vérification avant insertion.
type Review struct {
	ID            string    `bson:"_id" json:"id"`
	ProductID     string    `bson:"product_id" json:"productId"`
	UserID        string    `bson:"user_id" json:"userId"`
	UserName      string    `bson:"user_name" json:"userName"`
	Rating        int       `bson:"rating" json:"rating"` // 1-5
	Title         string    `bson:"title" json:"title"`
	Comment       string    `bson:"comment" json:"comment"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"`
	Verified      bool      `bson:"verified" json:"verified"`
	Status        string    `bson:"status" json:"status"`
	AdminResponse string    `bson:"admin_response,omitempty" json:"adminResponse,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
