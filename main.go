package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/theeace/dashboard-go/api"
	"github.com/theeace/dashboard-go/config"
	"github.com/theeace/dashboard-go/email"
	"github.com/theeace/dashboard-go/store"
	"github.com/theeace/dashboard-go/userdir"
	"github.com/theeace/dashboard-go/utils/images"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}

	recordStore, err := store.New(config.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}

	users, err := userdir.Open(userdir.Config{
		TursoDatabase: config.TursoDatabaseURL,
		TursoToken:    config.TursoAuthToken,
		SQLitePath:    config.UserDBPath,
	})
	if err != nil {
		log.Fatalf("Failed to open user directory: %v", err)
	}
	defer users.Close()
	log.Printf("User directory ready (%s)", users.ConnectionInfo())

	// One-shot legacy import: users.json is a migration source only and
	// is never written back by request handlers.
	migrated, err := users.MigrateLegacyUsers(recordStore)
	if err != nil {
		log.Fatalf("Legacy user migration failed: %v", err)
	}
	if migrated > 0 {
		log.Printf("Migrated %d legacy users into the directory", migrated)
	}

	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		jwtSecret = generateRandomKey(64)
		log.Println("JWT_SECRET not set -- generated an ephemeral secret; sessions will not survive restarts")
	}

	notifier := email.NewClient(config.ResendAPIKey, config.EmailFrom, config.EmailFromName, config.NotifyEmail)
	processor := images.NewImageProcessor(config.UploadsDir)

	handlers := api.New(recordStore, users, notifier, processor, jwtSecret)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(api.FilteredLogger(), gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
			"http://[::1]:3000",
			"http://[::1]:8080",
		},
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
	}))

	// Uploaded logo and preview images
	r.Static("/uploads", config.UploadsDir)

	// Authentication
	r.POST("/api/login", handlers.LoginHandler)
	r.GET("/api/auth/decode", handlers.DecodeSessionHandler)
	r.GET("/deleteCookiesAndLogout", handlers.LogoutHandler)

	// Admin: user directory
	r.GET("/api/users", handlers.ListUsersHandler)
	r.POST("/api/users", handlers.CreateUserHandler)
	r.POST("/api/users/bulk-import", handlers.BulkImportHandler)
	r.DELETE("/api/users/:userId", handlers.DeleteUserHandler)

	// Website configuration workflow
	websiteConfig := r.Group("/api/website-config")
	{
		websiteConfig.GET("/:userId", handlers.GetWebsiteConfigHandler)
		websiteConfig.POST("/:userId", handlers.UpdateWebsiteConfigHandler)
		websiteConfig.POST("/:userId/state", handlers.SetWebsiteStateHandler)
		websiteConfig.POST("/:userId/query", handlers.SubmitQueryHandler)
		websiteConfig.GET("/:userId/queries", handlers.GetQueriesHandler)
	}
	r.POST("/api/update-website-url/:userId", handlers.UpdateWebsiteURLHandler)
	r.POST("/api/upload-preview/:userId", handlers.UploadPreviewHandler)
	r.DELETE("/api/preview/:userId", handlers.RemovePreviewHandler)

	// Dashboard
	dashboard := r.Group("/api/dashboard")
	{
		dashboard.GET("/metrics/:userId", handlers.GetMetricsHandler)
		dashboard.POST("/metrics/:userId", handlers.UpdateMetricsHandler)
		dashboard.GET("/historical/:userId", handlers.GetHistoricalHandler)
		dashboard.POST("/historical/:userId", handlers.SaveHistoricalHandler)
		dashboard.DELETE("/historical/:userId/:date", handlers.DeleteHistoricalHandler)
		dashboard.GET("/widgets/:userId", handlers.GetWidgetsHandler)
		dashboard.POST("/widgets/:userId", handlers.AddWidgetHandler)
		dashboard.DELETE("/widgets/:userId/:widgetId", handlers.DeleteWidgetHandler)
		dashboard.GET("/content/:userId", handlers.GetContentHandler)
		dashboard.POST("/content/:userId", handlers.SaveContentHandler)
	}

	// Email marketing
	r.GET("/api/email-marketing/suggestions", handlers.GetSuggestionsHandler)
	r.POST("/api/email-marketing/suggest", handlers.SubmitSuggestionHandler)
	r.GET("/api/email-marketing/:userId", handlers.GetEmailStatsHandler)
	r.POST("/api/email-marketing/:userId", handlers.UpdateEmailStatsHandler)

	// Logo preferences
	r.GET("/api/logo-preference/:userId", handlers.GetLogoPreferenceHandler)
	r.POST("/api/logo-preference/:userId", handlers.UpdateLogoPreferenceHandler)
	r.POST("/api/logo-preference/:userId/state", handlers.SetLogoStateHandler)
	r.POST("/api/upload-logo/:userId", handlers.UploadLogoHandler)
	r.DELETE("/api/logo/:userId", handlers.RemoveLogoHandler)

	// Instagram marketing
	r.GET("/api/instagram-marketing/:userId", handlers.GetInstagramHandler)
	r.POST("/api/instagram-marketing/:userId", handlers.UpdateInstagramHandler)
	r.POST("/api/instagram-marketing/:userId/preference", handlers.AddNichePreferenceHandler)

	// Upcoming meetings
	r.GET("/api/upcoming-meetings/:userId", handlers.GetMeetingHandler)
	r.POST("/api/upcoming-meetings/:userId", handlers.UpdateMeetingHandler)

	log.Printf("Starting server on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// generateRandomKey creates a random hex string of specified length
func generateRandomKey(length int) string {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		panic(fmt.Sprintf("failed to generate random key: %v", err))
	}
	return hex.EncodeToString(bytes)
}
