package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// NotificationsWebSocket pousse le compteur de non-lus en temps réel.
// Le flux est réveillé par le canal Redis "notifications:<user>" publié
// à chaque création de notification.
func NotificationsWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "notifications:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Live notifications enabled",
	})

	// Détecte la fermeture côté client
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ch:
			count, err := database.MongoUsersDB.Collection("notifications").
				CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
			if err != nil {
				continue
			}
			if err := conn.WriteJSON(map[string]interface{}{
				"type":   "notification",
				"unread": count,
			}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
