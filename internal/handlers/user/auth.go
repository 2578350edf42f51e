package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/cache"
	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/services"
	"github.com/Ashu2380/mykart-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// setSessionCookie pose le token en cookie httpOnly SameSite=Strict.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(ttl.Seconds()), "/", "", false, true)
}

// Register crée un compte local. Un code de parrainage valide rattache le
// nouveau compte au parrain ; un code invalide est ignoré, l'inscription
// n'échoue jamais à cause du parrainage.
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name         string `json:"name" binding:"required"`
			Email        string `json:"email" binding:"required,email"`
			Password     string `json:"password" binding:"required,min=8"`
			ReferralCode string `json:"referralCode"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup data", "details": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		users := database.MongoUsersDB.Collection("users")

		// email déjà pris pour un compte local ?
		var existing models.User
		err := users.FindOne(ctx, bson.M{"email": input.Email, "provider": "local"}).Decode(&existing)
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
			return
		}

		user := models.User{
			ID:        primitive.NewObjectID().Hex(),
			Name:      input.Name,
			Email:     input.Email,
			Password:  hashed,
			Role:      "customer",
			Provider:  "local",
			CartData:  map[string]map[string]int{},
			Wishlist:  []models.WishlistItem{},
			CreatedAt: time.Now(),
		}

		if _, err := users.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
			return
		}

		// Parrainage + email de bienvenue : best-effort
		services.LinkReferral(ctx, input.ReferralCode, user.ID)
		go func() {
			if err := utils.SendEmail(user.Email, "Welcome to MyKart! 🎉", utils.GenerateWelcomeHTML(user.Name)); err != nil {
				log.Printf("⚠️ Erreur envoi email de bienvenue: %v", err)
			}
		}()

		token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, []byte(cfg.JWTSecret), utils.UserTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
			return
		}
		setSessionCookie(c, token, utils.UserTokenTTL)

		log.Printf("✅ Nouveau compte: %s (%s)", user.Email, user.ID)

		c.JSON(http.StatusCreated, gin.H{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
		})
	}
}

// Login authentifie un compte local et pose le cookie de session (7 jours).
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials payload"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := database.MongoUsersDB.Collection("users").
			FindOne(ctx, bson.M{"email": input.Email, "provider": "local"}).
			Decode(&user)
		if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}

		token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, []byte(cfg.JWTSecret), utils.UserTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		setSessionCookie(c, token, utils.UserTokenTTL)

		c.JSON(http.StatusOK, gin.H{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
		})
	}
}

// Logout révoque le token courant (blacklist Redis) et efface le cookie.
func Logout(c *gin.Context) {
	if jti := c.GetString("jti"); jti != "" {
		if err := cache.BlacklistToken(jti, utils.UserTokenTTL); err != nil {
			log.Printf("⚠️ Erreur blacklist token: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me retourne le profil de l'utilisateur connecté.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
