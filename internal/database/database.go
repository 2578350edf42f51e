package database

import (
	"context"
	"log"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Variables Globales ---
var (
	MongoClient     *mongo.Client
	MongoUsersDB    *mongo.Database
	MongoProductsDB *mongo.Database
	MongoOrdersDB   *mongo.Database

	Redis *redis.Client

	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise MongoDB, Redis et Elasticsearch.
func ConnectDatabases(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx, cfg)
	connectRedis(ctx, cfg)
	connectElastic(cfg)

	if err := ensureIndexes(ctx); err != nil {
		log.Printf("⚠️ Erreur création index MongoDB: %v", err)
	}

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MONGODB (multi-bases : users / products / orders)
// =============================================
func connectMongo(ctx context.Context, cfg *config.Config) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("❌ Erreur connexion MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ Erreur ping MongoDB: %v", err)
	}

	MongoClient = client
	MongoUsersDB = client.Database(cfg.MongoUsersDB)
	MongoProductsDB = client.Database(cfg.MongoProductsDB)
	MongoOrdersDB = client.Database(cfg.MongoOrdersDB)

	log.Println("✅ Connecté à MongoDB :", cfg.MongoURI)
}

// ensureIndexes déclare les contraintes d'unicité au niveau du stockage :
// email+provider, code de parrainage, un seul parrainage actif par filleul,
// un seul avis par (user, produit).
func ensureIndexes(ctx context.Context) error {
	users := MongoUsersDB.Collection("users")
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "provider", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "referral_code", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"referral_code": bson.M{"$type": "string"}}),
		},
	}); err != nil {
		return err
	}

	referrals := MongoUsersDB.Collection("referrals")
	if _, err := referrals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "referred_id", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": "pending"}),
	}); err != nil {
		return err
	}

	reviews := MongoProductsDB.Collection("reviews")
	if _, err := reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	orders := MongoOrdersDB.Collection("orders")
	_, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context, cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic(cfg *config.Config) {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche en repli MongoDB uniquement")
		return
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable — recherche en repli MongoDB:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

// Close ferme proprement les connexions.
func Close() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Printf("⚠️ Erreur fermeture MongoDB: %v", err)
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
	log.Println("🔌 Connexions fermées")
}
