package user

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// offlineRedis : client pointant dans le vide, pour les chemins où le cache
// est best-effort (une erreur est ignorée, jamais un nil pointer).
func offlineRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func wishlistRemoveRequest(t testing.TB, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/wishlist/remove", func(c *gin.Context) {
		c.Set("user_id", "user123")
		RemoveFromWishlist(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/wishlist/remove", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRemoveFromWishlist(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("retire le produit envoyé dans le body", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		w := wishlistRemoveRequest(mt.T, `{"productId": "p42"}`)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "p42")

		// La route n'a pas de paramètre d'URL : le $pull doit viser le
		// productId du body, jamais une chaîne vide.
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Contains(mt, evt.Command.String(), "p42")
		assert.NotContains(mt, evt.Command.String(), `"product_id": ""`)
	})

	mt.Run("produit absent de la wishlist", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		w := wishlistRemoveRequest(mt.T, `{"productId": "p42"}`)
		assert.Equal(mt, http.StatusNotFound, w.Code)
	})
}

func TestRemoveFromWishlistMissingProductID(t *testing.T) {
	w := wishlistRemoveRequest(t, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
