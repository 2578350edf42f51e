package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitFeedback enregistre un retour utilisateur libre.
func SubmitFeedback(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Subject string `json:"subject" binding:"required,max=200"`
		Message string `json:"message" binding:"required,min=10,max=2000"`
		Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	feedback := models.Feedback{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Subject:   input.Subject,
		Message:   input.Message,
		Rating:    input.Rating,
		CreatedAt: time.Now(),
	}

	if _, err := database.MongoUsersDB.Collection("feedback").InsertOne(ctx, feedback); err != nil {
		log.Printf("❌ Erreur enregistrement feedback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for your feedback!"})
}
