package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bitzone/internal/models"
	"bitzone/internal/monobank"
)

type createOrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type createOrderDeliveryRequest struct {
	City         string `json:"city" binding:"required"`
	CityRef      string `json:"cityRef" binding:"required"`
	Warehouse    string `json:"warehouse" binding:"required"`
	WarehouseRef string `json:"warehouseRef" binding:"required"`
	Recipient    string `json:"recipient" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
}

type createOrderRequest struct {
	Items         []createOrderItemRequest   `json:"items" binding:"required"`
	Delivery      createOrderDeliveryRequest `json:"delivery" binding:"required"`
	PaymentMethod string                     `json:"paymentMethod" binding:"required"`
}

type outOfStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID int64
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

// buildOrderItems prices the requested items against the catalog. Prices and
// names always come from the stored products, never from the client.
func buildOrderItems(requested []createOrderItemRequest, products map[int64]models.Product) ([]models.OrderItem, float64, error) {
	if len(requested) == 0 {
		return nil, 0, errors.New("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(requested))
	total := 0.0

	for _, item := range requested {
		if item.Quantity <= 0 {
			return nil, 0, errors.New("quantity must be greater than zero")
		}

		product, ok := products[item.ProductID]
		if !ok {
			return nil, 0, productNotFoundError{ProductID: item.ProductID}
		}
		if product.Stock < item.Quantity {
			return nil, 0, outOfStockError{
				ProductID: item.ProductID,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	return items, total, nil
}

// minorUnits converts a hryvnia amount to kopiykas for the payment provider.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

/*
POST /orders
- Guest orders allowed; a valid token attaches the order to the user
- paymentMethod "card" creates a Monobank invoice and returns its page URL
*/
func CreateOrder(db *mongo.Database, payments *monobank.Client, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if req.PaymentMethod != "card" && req.PaymentMethod != "cod" {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment method")
			return
		}

		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Println("[ORDER] [ERROR] token validation failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		ids := make([]int64, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.ProductID)
		}

		cursor, err := db.Collection("products").Find(ctx, bson.M{"roappId": bson.M{"$in": ids}})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var fetched []models.Product
		if err := cursor.All(ctx, &fetched); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		products := make(map[int64]models.Product, len(fetched))
		for _, product := range fetched {
			products[product.RoappID] = product
		}

		items, total, err := buildOrderItems(req.Items, products)
		if err != nil {
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product out of stock",
					"productId": stockErr.ProductID,
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product not found",
					"productId": notFoundErr.ProductID,
				})
				return
			}
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		order := models.Order{
			Reference:     uuid.NewString(),
			UserID:        userID,
			Items:         items,
			TotalPrice:    total,
			Delivery:      models.OrderDelivery(req.Delivery),
			PaymentMethod: req.PaymentMethod,
			Status:        models.OrderStatusPending,
			CreatedAt:     time.Now(),
		}

		result, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		order.ID = result.InsertedID.(primitive.ObjectID)

		response := gin.H{
			"orderId":   order.ID.Hex(),
			"reference": order.Reference,
			"total":     total,
		}

		if req.PaymentMethod == "card" {
			invoice, err := payments.CreateInvoice(ctx, monobank.InvoiceRequest{
				Amount:      minorUnits(total),
				Reference:   order.Reference,
				Destination: fmt.Sprintf("BitZone order %s", order.Reference),
			})
			if err != nil {
				log.Printf("[%s] invoice creation failed: %v", route, err)
				respondWithError(c, http.StatusBadGateway, route, "payment provider unavailable")
				return
			}

			_, err = db.Collection("orders").UpdateOne(
				ctx,
				bson.M{"_id": order.ID},
				bson.M{"$set": bson.M{"invoiceId": invoice.InvoiceID}},
			)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			response["paymentUrl"] = invoice.PageURL
		}

		log.Printf("[%s] order %s created, total=%.2f", route, order.Reference, total)
		c.JSON(http.StatusCreated, response)
	}
}

/*
GET /orders (authenticated)
- Own orders, newest first
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			bson.M{"userId": userIDValue},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// userIDFromHeader extracts the optional user identity from a bearer token.
// No header means a guest order; a present but invalid token is rejected.
func userIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return nil, errors.New("userId claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, errors.New("invalid userId")
	}

	return &userID, nil
}
