package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// handlePanic is deferred at the top of handlers so a panic surfaces as a
// 500 response instead of dropping the connection.
func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] recovered from panic: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// ensureDBConnection pings the primary with a short deadline before a handler
// commits to a query, turning an unreachable database into a clean 503.
func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(pingCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route, message string) {
	log.Printf("[%s] %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
