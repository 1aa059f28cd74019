package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bitzone/internal/cache"
	"bitzone/internal/config"
	"bitzone/internal/database"
	"bitzone/internal/handlers"
	"bitzone/internal/middleware"
	"bitzone/internal/monobank"
	"bitzone/internal/novaposhta"
	"bitzone/internal/roapp"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	// Redis is optional: a nil cache degrades every lookup to a miss.
	var store *cache.Cache
	if config.AppEnv.RedisURL != "" {
		store, err = cache.New(config.AppEnv.RedisURL)
		if err != nil {
			log.Println("redis unavailable, running without cache:", err)
		} else {
			log.Println("Redis connected")
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	roappClient := roapp.NewClient(httpClient, config.AppEnv.RoappBaseURL, config.AppEnv.RoappAPIKey)
	payments := monobank.NewClient(httpClient, config.AppEnv.MonobankBaseURL, config.AppEnv.MonobankToken, config.AppEnv.MonobankWebhookURL)
	shipping := novaposhta.NewClient(httpClient, config.AppEnv.NovaPoshtaBaseURL, config.AppEnv.NovaPoshtaAPIKey)

	syncer := roapp.NewSyncer(db, roappClient, store)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := syncer.SyncAll(ctx); err != nil {
			log.Println("startup sync failed:", err)
			return
		}
		log.Println("startup sync completed")
	}()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.POST("/auth/register", handlers.Register(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/products/:id/reviews", handlers.GetProductReviews(db))
	r.GET("/categories", handlers.GetCategories(db, store))

	r.GET("/shipping/cities", handlers.SearchCities(shipping, store))
	r.GET("/shipping/warehouses", handlers.GetWarehouses(shipping, store))

	r.POST("/orders", handlers.CreateOrder(db, payments, config.AppEnv.JWTSecret))
	r.GET("/orders", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetOrders(db))
	r.POST("/reviews", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.CreateReview(db))

	r.POST("/webhooks/roapp", handlers.RoappWebhook(syncer))
	r.POST("/webhooks/monobank", handlers.MonobankWebhook(db))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))
	}

	r.POST("/admin/login", handlers.AdminLogin(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})
		admin.POST("/sync", handlers.TriggerSync(syncer))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
