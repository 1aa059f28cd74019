package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bitzone/internal/cache"
	"bitzone/internal/novaposhta"
)

const shippingCacheTTL = time.Hour

/*
GET /shipping/cities?search=...
- Proxies Nova Poshta settlement search, cached per query
*/
func SearchCities(shipping *novaposhta.Client, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shipping/cities"
		defer handlePanic(c, route)

		query := strings.TrimSpace(c.Query("search"))
		if query == "" {
			respondWithError(c, http.StatusBadRequest, route, "query parameter search is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cacheKey := "np:cities:" + strings.ToLower(query)
		var cities []novaposhta.City
		if store.GetJSON(ctx, cacheKey, &cities) {
			c.JSON(http.StatusOK, gin.H{"cities": cities})
			return
		}

		cities, err := shipping.SearchCities(ctx, query, 20)
		if err != nil {
			log.Printf("[%s] upstream error: %v", route, err)
			respondWithError(c, http.StatusBadGateway, route, "shipping provider unavailable")
			return
		}

		store.SetJSON(ctx, cacheKey, cities, shippingCacheTTL)
		c.JSON(http.StatusOK, gin.H{"cities": cities})
	}
}

/*
GET /shipping/warehouses?cityRef=...
- Lists pickup points for a settlement, cached per settlement
*/
func GetWarehouses(shipping *novaposhta.Client, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shipping/warehouses"
		defer handlePanic(c, route)

		cityRef := strings.TrimSpace(c.Query("cityRef"))
		if cityRef == "" {
			respondWithError(c, http.StatusBadRequest, route, "query parameter cityRef is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cacheKey := fmt.Sprintf("np:warehouses:%s", cityRef)
		var warehouses []novaposhta.Warehouse
		if store.GetJSON(ctx, cacheKey, &warehouses) {
			c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
			return
		}

		warehouses, err := shipping.GetWarehouses(ctx, cityRef)
		if err != nil {
			log.Printf("[%s] upstream error: %v", route, err)
			respondWithError(c, http.StatusBadGateway, route, "shipping provider unavailable")
			return
		}

		store.SetJSON(ctx, cacheKey, warehouses, shippingCacheTTL)
		c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
	}
}
