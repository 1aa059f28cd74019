package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"bitzone/internal/models"
	"bitzone/internal/roapp"
)

// AdminLogin authenticates a user with the admin role. Non-admin accounts get
// the same response as bad credentials.
func AdminLogin(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email, "role": "admin"}).Decode(&user); err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[ADMIN] [ERROR] login lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			log.Println("[ADMIN] [ERROR] login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[ADMIN] [ERROR] login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		tokens, err := issueTokens(c, db, user, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			log.Println("[ADMIN] [ERROR] login token generation failed:", err)
			return
		}

		log.Println("[ADMIN] [INFO] admin login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    tokens.ExpiresIn,
			"user": loginResponseUser{
				ID:    user.ID.Hex(),
				Name:  user.Name,
				Email: user.Email,
			},
		})
	}
}

// TriggerSync kicks off a full upstream sync. The sync runs in the background
// so the admin request returns immediately.
func TriggerSync(syncer *roapp.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/sync"
		defer handlePanic(c, route)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if err := syncer.SyncAll(ctx); err != nil {
				log.Printf("[%s] sync failed: %v", route, err)
				return
			}
			log.Printf("[%s] sync completed", route)
		}()

		c.JSON(http.StatusAccepted, gin.H{"message": "sync started"})
	}
}
