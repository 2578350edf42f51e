package routes

import (
	"net/http"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/handlers/admin"
	"github.com/Ashu2380/mykart-sub001/internal/handlers/payement"
	"github.com/Ashu2380/mykart-sub001/internal/handlers/product"
	"github.com/Ashu2380/mykart-sub001/internal/handlers/user"
	"github.com/Ashu2380/mykart-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes branche toutes les routes de l'API sur le moteur Gin.
func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	secret := []byte(cfg.JWTSecret)
	auth := middleware.AuthRequired(secret)
	authOptional := middleware.AuthOptional(secret)
	adminOnly := middleware.RequireAdmin

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- Comptes ----
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", middleware.RegisterRateLimit(), user.Register(cfg))
		userGroup.POST("/login", middleware.LoginRateLimit(), user.Login(cfg))
		userGroup.POST("/logout", auth, user.Logout)
		userGroup.GET("/me", auth, user.Me)

		// OAuth Google (goth)
		userGroup.GET("/auth/:provider", user.BeginAuth)
		userGroup.GET("/auth/:provider/callback", user.CallbackAuth(cfg))
	}

	// ---- Back-office ----
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", admin.Login(cfg))
		adminGroup.GET("/dashboard", auth, adminOnly, admin.Dashboard)
		adminGroup.GET("/feedback", auth, adminOnly, admin.ListFeedback)
	}

	// ---- Catalogue ----
	productGroup := r.Group("/api/product")
	{
		productGroup.GET("/list", product.ListProducts)
		productGroup.GET("/search", product.SearchProducts)
		productGroup.GET("/recommendations", auth, product.Recommendations)
		productGroup.GET("/:id", authOptional, product.GetProduct)
		productGroup.GET("/:id/reviews", product.GetProductReviews)

		productGroup.POST("/add", auth, adminOnly, product.AddProduct)
		productGroup.POST("/update", auth, adminOnly, product.UpdateProduct)
		productGroup.POST("/remove", auth, adminOnly, product.RemoveProduct)
	}

	// ---- Avis ----
	reviewGroup := r.Group("/api/review")
	{
		reviewGroup.POST("/add", auth, product.CreateReview)
		reviewGroup.POST("/delete", auth, product.DeleteReview)
		reviewGroup.POST("/list", auth, adminOnly, product.PendingReviews)
		reviewGroup.POST("/moderate", auth, adminOnly, product.ModerateReview)
	}

	// ---- Panier ----
	cartGroup := r.Group("/api/cart", auth)
	{
		cartGroup.POST("/get", user.GetCart)
		cartGroup.POST("/add", user.AddToCart)
		cartGroup.POST("/update", user.UpdateCart)
	}

	// ---- Commandes & paiement ----
	orderGroup := r.Group("/api/order", auth)
	{
		orderGroup.POST("/place", payement.PlaceOrder)
		orderGroup.POST("/razorpay", payement.PlaceOrderRazorpay)
		orderGroup.POST("/verifyRazorpay", payement.VerifyRazorpay)
		orderGroup.GET("/userorders", payement.UserOrders)

		orderGroup.POST("/list", adminOnly, payement.AllOrders)
		orderGroup.POST("/status", adminOnly, payement.UpdateStatus)
		orderGroup.POST("/payment-status", adminOnly, payement.UpdatePaymentStatus)
	}

	// ---- Wishlist & alertes de prix ----
	wishlistGroup := r.Group("/api/wishlist", auth)
	{
		wishlistGroup.GET("", user.GetWishlist)
		wishlistGroup.POST("/add", user.AddToWishlist)
		wishlistGroup.POST("/remove", user.RemoveFromWishlist)
		wishlistGroup.POST("/alert", user.SetPriceAlert)
	}

	// ---- Parrainage ----
	referralGroup := r.Group("/api/referral", auth)
	{
		referralGroup.GET("/code", user.GetReferralCode)
		referralGroup.GET("/stats", user.GetReferralStats)
		referralGroup.GET("/qr", user.GetReferralQR(cfg))
	}

	// ---- Notifications ----
	notifGroup := r.Group("/api/notifications", auth)
	{
		notifGroup.GET("", user.GetNotifications)
		notifGroup.GET("/unread-count", user.UnreadCount)
		notifGroup.POST("/read", user.MarkRead)
		notifGroup.POST("/read-all", user.MarkAllRead)
		notifGroup.GET("/ws", user.NotificationsWebSocket)
	}

	// ---- Feedback ----
	r.POST("/api/feedback", auth, user.SubmitFeedback)
}
