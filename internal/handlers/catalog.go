package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bitzone/internal/catalog"
	"bitzone/internal/models"
)

// mongoCategories adapts the categories collection to the composer's lookup
// contract: a miss is (nil, nil).
type mongoCategories struct {
	db *mongo.Database
}

func (m *mongoCategories) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := m.db.Collection("categories").FindOne(ctx, bson.M{"roappId": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

/*
GET /products
- All filter params optional, all passed as strings
- Response: { products, total } where total is the unpaginated match count
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		req := catalog.FilterRequest{
			Search:    c.Query("search"),
			Category:  c.Query("category"),
			MinPrice:  c.Query("minPrice"),
			MaxPrice:  c.Query("maxPrice"),
			Platforms: c.Query("platforms"),
			Types:     c.Query("types"),
			Sort:      c.Query("sort"),
			Page:      c.Query("page"),
		}

		log.Printf(
			"[%s] hit search=%q category=%q types=%q platforms=%q page=%q",
			route, req.Search, req.Category, req.Types, req.Platforms, req.Page,
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter, err := catalog.ComposeQuery(ctx, req, &mongoCategories{db: db})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		findOptions := options.Find().
			SetSort(catalog.ResolveSort(req)).
			SetSkip(catalog.PageSkip(req)).
			SetLimit(catalog.PageSize)

		if strings.TrimSpace(req.Search) != "" {
			findOptions.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		}

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d of %d products", route, len(products), total)
		c.JSON(http.StatusOK, gin.H{
			"products": catalog.ProjectAll(products),
			"total":    total,
		})
	}
}

/*
GET /products/:id
- id is the carrier-assigned roapp id, not the Mongo _id
*/
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"roappId": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		rating, reviewCount := reviewSummary(ctx, db, id)

		c.JSON(http.StatusOK, gin.H{
			"product":       catalog.Project(product),
			"averageRating": rating,
			"reviewCount":   reviewCount,
		})
	}
}

// reviewSummary aggregates rating stats; a failure degrades to zero values
// rather than failing the product page.
func reviewSummary(ctx context.Context, db *mongo.Database, productID int64) (float64, int64) {
	pipeline := []bson.M{
		{"$match": bson.M{"productId": productID}},
		{"$group": bson.M{
			"_id":    nil,
			"avg":    bson.M{"$avg": "$rating"},
			"count":  bson.M{"$sum": 1},
		}},
	}

	cursor, err := db.Collection("reviews").Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("[REVIEWS] summary aggregation failed: %v", err)
		return 0, 0
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil || len(results) == 0 {
		return 0, 0
	}
	return results[0].Avg, results[0].Count
}
