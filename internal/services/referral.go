package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math"
	"math/big"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// ReferredReward : bonus fixe crédité au filleul.
	ReferredReward = 50.0

	// ReferrerRewardRate : part de la première commande créditée au parrain.
	ReferrerRewardRate = 0.10

	// ReferralValidity : un parrainage non converti expire au bout de 30 jours.
	ReferralValidity = 30 * 24 * time.Hour

	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// ComputeReferrerReward applique le barème : 10%% du montant de la commande,
// arrondi à l'unité inférieure.
func ComputeReferrerReward(orderAmount float64) float64 {
	return math.Floor(orderAmount * ReferrerRewardRate)
}

// GenerateReferralCode produit un code court partageable (préfixe MK +
// 6 caractères sans ambiguïté 0/O, 1/I).
func GenerateReferralCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// repli improbable : l'horloge fait l'affaire pour un code court
			b[i] = codeAlphabet[time.Now().UnixNano()%int64(len(codeAlphabet))]
			continue
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return "MK" + string(b)
}

// EnsureReferralCode retourne le code de l'utilisateur, en le générant
// paresseusement à la première demande. L'index unique protège contre
// les collisions : on retente jusqu'à 5 fois.
func EnsureReferralCode(ctx context.Context, userID string) (string, error) {
	users := database.MongoUsersDB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return "", err
	}
	if user.ReferralCode != "" {
		return user.ReferralCode, nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		code := GenerateReferralCode()
		res, err := users.UpdateOne(ctx,
			bson.M{"_id": userID, "referral_code": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"referral_code": code}},
		)
		if err == nil {
			if res.MatchedCount == 0 {
				// généré entre-temps par une requête concurrente : on relit
				if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
					return "", err
				}
				return user.ReferralCode, nil
			}
			return code, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", err
		}
		log.Printf("⚠️ Collision code parrainage %s, nouvelle tentative", code)
	}
	return "", fmt.Errorf("impossible de générer un code de parrainage unique")
}

// LinkReferral rattache un nouvel inscrit à son parrain si le code est
// valide. Un code invalide est ignoré silencieusement (l'inscription ne
// doit jamais échouer à cause du parrainage).
func LinkReferral(ctx context.Context, code, referredID string) {
	if code == "" {
		return
	}

	users := database.MongoUsersDB.Collection("users")

	var referrer models.User
	if err := users.FindOne(ctx, bson.M{"referral_code": code}).Decode(&referrer); err != nil {
		log.Printf("⚠️ Code de parrainage inconnu: %s", code)
		return
	}
	if referrer.ID == referredID {
		return // pas d'auto-parrainage
	}

	now := time.Now()
	referral := models.Referral{
		ID:         primitive.NewObjectID().Hex(),
		ReferrerID: referrer.ID,
		ReferredID: referredID,
		Code:       code,
		Status:     models.ReferralPending,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ReferralValidity),
	}

	if _, err := database.MongoUsersDB.Collection("referrals").InsertOne(ctx, referral); err != nil {
		// index unique : un parrainage actif existe déjà pour ce filleul
		log.Printf("⚠️ Erreur création parrainage: %v", err)
		return
	}

	if _, err := users.UpdateOne(ctx, bson.M{"_id": referredID},
		bson.M{"$set": bson.M{"referred_by": referrer.ID}}); err != nil {
		log.Printf("⚠️ Erreur liaison filleul: %v", err)
		return
	}

	_, _ = users.UpdateOne(ctx, bson.M{"_id": referrer.ID},
		bson.M{"$inc": bson.M{"referral_stats.total_referrals": 1}})

	log.Printf("🤝 Parrainage créé: %s → %s (code %s)", referrer.ID, referredID, code)
}

// ProcessReferralReward crédite la récompense de parrainage quand la
// première commande payée du filleul aboutit.
//
// L'idempotence repose sur une seule mise à jour conditionnelle
// (pending → completed) : deux commandes concurrentes ne peuvent pas
// créditer deux fois, la seconde ne trouve plus de ligne pending.
// Toujours appelé en best-effort par l'appelant.
func ProcessReferralReward(ctx context.Context, userID string, orderAmount float64) error {
	users := database.MongoUsersDB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return err
	}
	if user.ReferredBy == "" {
		return nil // pas de parrainage
	}

	referrerReward := ComputeReferrerReward(orderAmount)
	now := time.Now()

	// Bascule atomique pending → completed ; les parrainages expirés ne
	// créditent jamais.
	res := database.MongoUsersDB.Collection("referrals").FindOneAndUpdate(ctx,
		bson.M{
			"referrer_id": user.ReferredBy,
			"referred_id": userID,
			"status":      models.ReferralPending,
			"expires_at":  bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{
			"status":          models.ReferralCompleted,
			"completed_at":    now,
			"referrer_reward": referrerReward,
			"referred_reward": ReferredReward,
		}},
	)

	var referral models.Referral
	if err := res.Decode(&referral); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil // déjà crédité, expiré, ou pas de parrainage actif
		}
		return err
	}

	// Grand livre du parrain + compteurs agrégés
	_, err := users.UpdateOne(ctx, bson.M{"_id": user.ReferredBy}, bson.M{
		"$push": bson.M{"referral_rewards": models.RewardEntry{
			Amount:      referrerReward,
			Type:        "referrer_bonus",
			OrderAmount: orderAmount,
			Description: fmt.Sprintf("Referral bonus for %s's first order", user.Name),
			CreatedAt:   now,
		}},
		"$inc": bson.M{
			"referral_stats.successful_referrals": 1,
			"referral_stats.total_earned":         referrerReward,
			"referral_stats.pending_rewards":      referrerReward,
		},
	})
	if err != nil {
		return err
	}

	// Grand livre du filleul
	_, err = users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"referral_rewards": models.RewardEntry{
			Amount:      ReferredReward,
			Type:        "referred_bonus",
			OrderAmount: orderAmount,
			Description: "Welcome bonus for your first order",
			CreatedAt:   now,
		}},
	})
	if err != nil {
		return err
	}

	// Préviens les deux parties
	NotifyReferralReward(ctx, user.ReferredBy, referrerReward)
	NotifyReferralReward(ctx, userID, ReferredReward)

	log.Printf("🎁 Parrainage crédité: parrain %s +%.0f, filleul %s +%.0f",
		user.ReferredBy, referrerReward, userID, ReferredReward)
	return nil
}

// NotifyReferralReward émet la notification de récompense. Best-effort.
func NotifyReferralReward(ctx context.Context, userID string, amount float64) {
	err := CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifSystem,
		Title:   "Referral reward earned",
		Message: fmt.Sprintf("You earned ₹%.0f in referral rewards!", amount),
		Metadata: map[string]interface{}{
			"reward_amount": amount,
		},
	})
	if err != nil {
		log.Printf("⚠️ Erreur notification récompense %s: %v", userID, err)
	}
}
