package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"

	"github.com/Ashu2380/mykart-sub001/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	MinioClient *minio.Client
	minioBucket string
	minioScheme = "http"
	minioHost   string
)

// ConnectMinio initialise le client MinIO et s'assure que le bucket existe.
// Non bloquant : sans MinIO les produits sont simplement créés sans images.
func ConnectMinio(cfg *config.Config) {
	if cfg.MinioEndpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT non configuré — upload d'images désactivé")
		return
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket créé :", cfg.MinioBucket)
	}

	MinioClient = client
	minioBucket = cfg.MinioBucket
	minioHost = cfg.MinioEndpoint
	if cfg.MinioUseSSL {
		minioScheme = "https"
	}
	log.Println("✅ Connecté à MinIO :", cfg.MinioEndpoint)
}

// UploadProductImage stocke une image et retourne son URL durable.
// Contrat : l'appelant traite ("", err) comme « pas d'image », jamais
// comme une erreur bloquante.
func UploadProductImage(file *multipart.FileHeader) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Nom d'objet unique pour éviter les écrasements
	objectName := uuid.NewString() + filepath.Ext(file.Filename)

	_, err = MinioClient.PutObject(context.Background(), minioBucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s://%s/%s/%s", minioScheme, minioHost, minioBucket, objectName)
	return url, nil
}
