package models

import "time"

// Types de notification
const (
	NotifPriceAlert     = "price_alert"
	NotifRestock        = "restock"
	NotifDeal           = "deal"
	NotifRecommendation = "recommendation"
	NotifOrderUpdate    = "order_update"
	NotifSystem         = "system"
	NotifPaymentUpdate  = "payment_update"
)

// Priorités
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification : append-only côté système, l'utilisateur ne peut que
// la marquer comme lue.
type Notification struct {
	ID        string                 `bson:"_id" json:"id"`
	UserID    string                 `bson:"user_id" json:"userId"`
	Type      string                 `bson:"type" json:"type"`
	Title     string                 `bson:"title" json:"title"`
	Message   string                 `bson:"message" json:"message"`
	ProductID string                 `bson:"product_id,omitempty" json:"productId,omitempty"`
	OrderID   string                 `bson:"order_id,omitempty" json:"orderId,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IsRead    bool                   `bson:"is_read" json:"isRead"`
	Priority  string                 `bson:"priority" json:"priority"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
