package user

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetReferralCode retourne le code de parrainage, généré paresseusement
// à la première demande.
func GetReferralCode(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	code, err := services.EnsureReferralCode(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referralCode": code})
}

// GetReferralStats retourne les compteurs agrégés, le grand livre des
// récompenses et les parrainages en cours.
func GetReferralStats(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	referrals := []models.Referral{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoUsersDB.Collection("referrals").
		Find(ctx, bson.M{"referrer_id": userID}, opts)
	if err == nil {
		defer cursor.Close(ctx)
		_ = cursor.All(ctx, &referrals)
	}

	rewards := user.ReferralRewards
	if rewards == nil {
		rewards = []models.RewardEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     user.ReferralStats,
		"rewards":   rewards,
		"referrals": referrals,
	})
}

// GetReferralQR retourne un QR PNG du lien de partage du parrainage.
func GetReferralQR(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		code, err := services.EnsureReferralCode(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate referral code"})
			return
		}

		shareURL := fmt.Sprintf("%s/register?ref=%s", cfg.FrontendURL, code)
		png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate QR code"})
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	}
}
