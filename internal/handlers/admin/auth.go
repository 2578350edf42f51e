package admin

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// Login authentifie l'administrateur unique configuré par l'environnement
// et pose un cookie de session d'un jour avec le rôle admin.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}

		emailOK := subtle.ConstantTimeCompare([]byte(input.Email), []byte(cfg.AdminEmail)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(cfg.AdminPassword)) == 1
		if !emailOK || !passOK {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateJWT("admin", cfg.AdminEmail, "admin", []byte(cfg.JWTSecret), utils.AdminTokenTTL)
		if err != nil {
			log.Printf("❌ Erreur génération token admin: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("token", token, int(utils.AdminTokenTTL.Seconds()), "/", "", false, true)

		log.Printf("✅ Connexion admin: %s", cfg.AdminEmail)
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}
