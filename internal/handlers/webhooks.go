package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bitzone/internal/models"
	"bitzone/internal/monobank"
	"bitzone/internal/roapp"
)

type roappWebhookPayload struct {
	Event  string `json:"event"`
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
}

/*
POST /webhooks/roapp
- Upstream change notifications; always answered 200 so the platform
  does not retry indefinitely, failures are resynced by the next full sync
*/
func RoappWebhook(syncer *roapp.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /webhooks/roapp"
		defer handlePanic(c, route)

		var payload roappWebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("[%s] malformed payload: %v", route, err)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		switch payload.Entity {
		case "good", "product":
			if err := syncer.SyncProduct(ctx, payload.ID); err != nil {
				log.Printf("[%s] product %d sync failed: %v", route, payload.ID, err)
			}
		case "category":
			if _, err := syncer.SyncCategories(ctx); err != nil {
				log.Printf("[%s] category sync failed: %v", route, err)
			}
		default:
			log.Printf("[%s] ignoring entity %q event %q", route, payload.Entity, payload.Event)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// paymentStatusFor maps provider invoice statuses to order statuses. An empty
// result means the status carries no state change for us.
func paymentStatusFor(invoiceStatus string) string {
	switch invoiceStatus {
	case monobank.StatusSuccess:
		return models.OrderStatusPaid
	case monobank.StatusFailure, monobank.StatusExpired:
		return models.OrderStatusFailed
	default:
		return ""
	}
}

/*
POST /webhooks/monobank
- Invoice status updates; unknown invoices are logged and acknowledged
*/
func MonobankWebhook(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /webhooks/monobank"
		defer handlePanic(c, route)

		var payload monobank.WebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("[%s] malformed payload: %v", route, err)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		status := paymentStatusFor(payload.Status)
		if status == "" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"invoiceId": payload.InvoiceID},
			bson.M{"$set": bson.M{"status": status}},
		)
		if err != nil {
			log.Printf("[%s] order update failed: %v", route, err)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		if result.MatchedCount == 0 {
			log.Printf("[%s] no order for invoice %s", route, payload.InvoiceID)
		} else {
			log.Printf("[%s] invoice %s -> %s", route, payload.InvoiceID, status)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
