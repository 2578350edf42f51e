package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"
	"github.com/Ashu2380/mykart-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BeginAuth démarre le flux OAuth (provider dans l'URL, géré par gothic).
func BeginAuth(c *gin.Context) {
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : retrouve ou crée le compte, pose le
// cookie de session et redirige vers le front.
func CallbackAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			log.Printf("❌ Erreur callback OAuth: %v", err)
			c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth")
			return
		}

		user := findOrCreateOAuthUser(gothUser)

		token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, []byte(cfg.JWTSecret), utils.UserTokenTTL)
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth")
			return
		}
		setSessionCookie(c, token, utils.UserTokenTTL)

		c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL)
	}
}

func findOrCreateOAuthUser(gothUser goth.User) models.User {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := database.MongoUsersDB.Collection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{
		"provider":    gothUser.Provider,
		"provider_id": gothUser.UserID,
	}).Decode(&user)
	if err == nil {
		return user
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}

	user = models.User{
		ID:         primitive.NewObjectID().Hex(),
		Name:       name,
		Email:      gothUser.Email,
		Role:       "customer",
		Provider:   gothUser.Provider,
		ProviderID: gothUser.UserID,
		CartData:   map[string]map[string]int{},
		Wishlist:   []models.WishlistItem{},
		CreatedAt:  time.Now(),
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Printf("❌ Erreur création compte OAuth: %v", err)
	} else {
		log.Printf("✅ Compte OAuth créé: %s via %s", user.Email, user.Provider)
	}

	return user
}
