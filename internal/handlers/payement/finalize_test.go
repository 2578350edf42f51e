package payement

import (
	"context"
	"strings"
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func offlineRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestClearCartEmptiesCartData(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("vide cart_data après commande", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		clearCart(context.Background(), "user123")

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Contains(mt, evt.Command.String(), "cart_data")
		assert.Contains(mt, evt.Command.String(), "user123")
	})
}

func TestFinalizePaidOrderFirstFlip(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("première bascule : panier vidé et notification émise", func(mt *mtest.T) {
		database.MongoOrdersDB = mt.Client.Database("mykart_orders")
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(
			// Bascule payment=false → true : la commande matche
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Vidage du panier
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Notification payment_update
			mtest.CreateSuccessResponse(),
			// ProcessReferralReward : utilisateur sans parrain, no-op
			mtest.CreateCursorResponse(0, "mykart_users.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "user123"},
				{Key: "name", Value: "Asha"},
			}),
		)

		alreadyPaid, err := finalizePaidOrder(context.Background(), "user123", "ord1", 999)
		require.NoError(mt, err)
		assert.False(mt, alreadyPaid)

		var commands []string
		var cartCleared bool
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
			if evt.CommandName == "update" && strings.Contains(evt.Command.String(), "cart_data") {
				cartCleared = true
			}
		}
		assert.Equal(mt, []string{"update", "update", "insert", "find"}, commands)
		assert.True(mt, cartCleared, "vidage du panier attendu")
	})
}

func TestFinalizePaidOrderRepeatIsNoOp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("revérification d'un paiement déjà enregistré", func(mt *mtest.T) {
		database.MongoOrdersDB = mt.Client.Database("mykart_orders")
		database.Redis = offlineRedis()

		mt.AddMockResponses(
			// Plus rien à basculer : payment est déjà à true
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			// Relecture : la commande existe et appartient bien à l'appelant
			mtest.CreateCursorResponse(0, "mykart_orders.orders", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "ord1"},
				{Key: "user_id", Value: "user123"},
				{Key: "payment", Value: true},
			}),
		)

		alreadyPaid, err := finalizePaidOrder(context.Background(), "user123", "ord1", 999)
		require.NoError(mt, err)
		assert.True(mt, alreadyPaid)

		// Ni revidage de panier, ni nouvelle notification, ni parrainage.
		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		assert.Equal(mt, []string{"update", "find"}, commands)
	})

	mt.Run("commande inconnue", func(mt *mtest.T) {
		database.MongoOrdersDB = mt.Client.Database("mykart_orders")

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "mykart_orders.orders", mtest.FirstBatch),
		)

		_, err := finalizePaidOrder(context.Background(), "user123", "ord-inconnue", 999)
		assert.Error(mt, err)
	})

	mt.Run("commande d'un autre utilisateur", func(mt *mtest.T) {
		database.MongoOrdersDB = mt.Client.Database("mykart_orders")

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(1, "mykart_orders.orders", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "ord1"},
				{Key: "user_id", Value: "quelqu'un-d-autre"},
				{Key: "payment", Value: true},
			}),
		)

		_, err := finalizePaidOrder(context.Background(), "user123", "ord1", 999)
		assert.Error(mt, err)
	})
}
