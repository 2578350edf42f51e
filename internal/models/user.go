package models

import "time"

// PriceAlert : préférence d'alerte prix sur un article de la wishlist.
// LastNotifiedPrice évite les notifications en double quand le prix ne bouge pas.
type PriceAlert struct {
	Enabled           bool    `bson:"enabled" json:"enabled"`
	TargetPrice       float64 `bson:"target_price" json:"targetPrice"`
	LastNotifiedPrice float64 `bson:"last_notified_price" json:"lastNotifiedPrice"`
}

type WishlistItem struct {
	ProductID  string     `bson:"product_id" json:"productId"`
	AddedAt    time.Time  `bson:"added_at" json:"addedAt"`
	PriceAlert PriceAlert `bson:"price_alert" json:"priceAlert"`
}

// RewardEntry : une ligne du grand livre des récompenses de parrainage.
type RewardEntry struct {
	Amount      float64   `bson:"amount" json:"amount"`
	Type        string    `bson:"type" json:"type"` // referrer_bonus | referred_bonus
	OrderAmount float64   `bson:"order_amount" json:"orderAmount"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

type ReferralStats struct {
	TotalReferrals      int     `bson:"total_referrals" json:"totalReferrals"`
	SuccessfulReferrals int     `bson:"successful_referrals" json:"successfulReferrals"`
	TotalEarned         float64 `bson:"total_earned" json:"totalEarned"`
	PendingRewards      float64 `bson:"pending_rewards" json:"pendingRewards"`
}

type User struct {
	ID       string `bson:"_id" json:"userId"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role,omitempty"`

	// OAuth
	Provider   string `bson:"provider" json:"provider,omitempty"`
	ProviderID string `bson:"provider_id,omitempty" json:"-"`

	// Panier : itemId → taille → quantité. Vidé ({}) après une commande réussie.
	CartData map[string]map[string]int `bson:"cart_data" json:"cartData"`

	Wishlist []WishlistItem `bson:"wishlist" json:"wishlist"`

	// Parrainage
	ReferralCode    string        `bson:"referral_code,omitempty" json:"referralCode,omitempty"`
	ReferredBy      string        `bson:"referred_by,omitempty" json:"referredBy,omitempty"`
	ReferralStats   ReferralStats `bson:"referral_stats" json:"referralStats"`
	ReferralRewards []RewardEntry `bson:"referral_rewards" json:"referralRewards"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
