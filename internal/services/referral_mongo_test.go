package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func offlineRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func referredUserDoc() bson.D {
	return bson.D{
		{Key: "_id", Value: "filleul1"},
		{Key: "name", Value: "Asha"},
		{Key: "referred_by", Value: "parrain1"},
	}
}

func pendingReferralDoc() bson.D {
	return bson.D{
		{Key: "_id", Value: "r1"},
		{Key: "referrer_id", Value: "parrain1"},
		{Key: "referred_id", Value: "filleul1"},
		{Key: "code", Value: "MKABC234"},
		{Key: "status", Value: models.ReferralPending},
		{Key: "expires_at", Value: time.Now().Add(24 * time.Hour)},
	}
}

func TestProcessReferralRewardCreditsOnce(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("premier paiement crédite les deux parties", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(
			// FindOne user
			mtest.CreateCursorResponse(0, "mykart_users.users", mtest.FirstBatch, referredUserDoc()),
			// Bascule pending → completed : la ligne existe encore
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: pendingReferralDoc()}),
			// Grand livre + compteurs du parrain
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Grand livre du filleul
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Deux notifications
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, ProcessReferralReward(context.Background(), "filleul1", 999))

		// La récompense du parrain (floor 10% de 999 = 99) part bien dans
		// la mise à jour du grand livre.
		var sawLedgerUpdate bool
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "update" {
				continue
			}
			cmd := evt.Command.String()
			if strings.Contains(cmd, "referral_rewards") && strings.Contains(cmd, "99") {
				sawLedgerUpdate = true
			}
		}
		assert.True(mt, sawLedgerUpdate, "mise à jour du grand livre attendue")
	})

	mt.Run("second paiement : plus de ligne pending, no-op", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "mykart_users.users", mtest.FirstBatch, referredUserDoc()),
			// La bascule conditionnelle ne matche plus rien
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		require.NoError(mt, ProcessReferralReward(context.Background(), "filleul1", 999))

		// Aucun crédit au second passage : ni update ni insert émis
		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "update", evt.CommandName)
			assert.NotEqual(mt, "insert", evt.CommandName)
		}
	})

	mt.Run("utilisateur sans parrain : no-op immédiat", func(mt *mtest.T) {
		database.MongoUsersDB = mt.Client.Database("mykart_users")
		database.Redis = offlineRedis()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "mykart_users.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "solo1"},
				{Key: "name", Value: "Ravi"},
			}),
		)

		require.NoError(mt, ProcessReferralReward(context.Background(), "solo1", 500))

		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "findAndModify", evt.CommandName)
		}
	})
}
