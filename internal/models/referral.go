package models

import "time"

// Statuts d'un parrainage
const (
	ReferralPending   = "pending"
	ReferralCompleted = "completed"
	ReferralExpired   = "expired"
)

// Referral : un enregistrement par couple (parrain, filleul).
// Invariant : au plus un parrainage actif par filleul ; la récompense est
// calculée une seule fois, à la première commande payée du filleul.
type Referral struct {
	ID             string     `bson:"_id" json:"id"`
	ReferrerID     string     `bson:"referrer_id" json:"referrerId"`
	ReferredID     string     `bson:"referred_id" json:"referredId"`
	Code           string     `bson:"code" json:"code"`
	Status         string     `bson:"status" json:"status"`
	ReferrerReward float64    `bson:"referrer_reward" json:"referrerReward"`
	ReferredReward float64    `bson:"referred_reward" json:"referredReward"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
	CompletedAt    *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	ExpiresAt      time.Time  `bson:"expires_at" json:"expiresAt"`
}
