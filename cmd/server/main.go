package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/routes"
	"github.com/Ashu2380/mykart-sub001/internal/services"
	"github.com/Ashu2380/mykart-sub001/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

func main() {
	cfg := config.Load()

	database.ConnectDatabases(cfg)
	defer database.Close()

	services.ConnectMinio(cfg)
	services.InitRazorpay(cfg)
	utils.InitMailer(cfg)
	setupOAuth(cfg)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 MyKart API démarrée sur le port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erreur serveur: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🔌 Arrêt du serveur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Arrêt forcé: %v", err)
	}
	log.Println("✅ Serveur arrêté proprement")
}

// setupOAuth branche le provider Google sur goth. Le store de sessions
// ne porte que l'état temporaire du flux OAuth, pas la session utilisateur
// (elle vit dans le cookie JWT).
func setupOAuth(cfg *config.Config) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("⚠️ GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET non configurés — OAuth désactivé")
		return
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.MaxAge(int((10 * time.Minute).Seconds()))
	gothic.Store = store

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/api/user/auth/google/callback",
			"email", "profile",
		),
	)

	// Gin passe le provider en paramètre de route, pas en query string.
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if p := req.URL.Query().Get("provider"); p != "" {
			return p, nil
		}
		return "google", nil
	}

	log.Println("✅ OAuth Google configuré")
}
