package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bitzone/internal/cache"
	"bitzone/internal/models"
	"bitzone/internal/roapp"
)

const categoryTreeTTL = 5 * time.Minute

/*
GET /categories
- Returns the category tree: roots with nested children
- Served from redis when warm; invalidated by every sync
*/
func GetCategories(db *mongo.Database, c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(ctx, route)

		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		var cached []*models.Category
		if c.GetJSON(reqCtx, roapp.CategoryTreeCacheKey, &cached) {
			ctx.JSON(http.StatusOK, gin.H{"categories": cached})
			return
		}

		if err := ensureDBConnection(ctx.Request.Context(), db); err != nil {
			respondWithError(ctx, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		cursor, err := db.Collection("categories").Find(reqCtx, bson.M{})
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(reqCtx)

		var categories []models.Category
		if err := cursor.All(reqCtx, &categories); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, route, "decode error")
			return
		}

		tree := buildCategoryTree(categories)
		c.SetJSON(reqCtx, roapp.CategoryTreeCacheKey, tree, categoryTreeTTL)

		log.Printf("[%s] returning %d root categories", route, len(tree))
		ctx.JSON(http.StatusOK, gin.H{"categories": tree})
	}
}

// buildCategoryTree nests categories under their parents. A category whose
// parent is missing (skipped during sync, or part of a broken chain) is
// promoted to a root so it stays reachable.
func buildCategoryTree(categories []models.Category) []*models.Category {
	byID := make(map[int64]*models.Category, len(categories))
	for i := range categories {
		node := categories[i]
		node.Children = nil
		byID[node.RoappID] = &node
	}

	var roots []*models.Category
	for _, node := range byID {
		if node.ParentID != nil && !inParentCycle(node.RoappID, byID) {
			if parent, ok := byID[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortNodes func(nodes []*models.Category)
	sortNodes = func(nodes []*models.Category) {
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].Name < nodes[j].Name
		})
		for _, node := range nodes {
			sortNodes(node.Children)
		}
	}
	sortNodes(roots)

	if roots == nil {
		roots = []*models.Category{}
	}
	return roots
}

// inParentCycle reports whether following the parent chain from id ever
// returns to id. Such nodes are promoted to roots; nesting them would make
// the tree walk non-terminating.
func inParentCycle(id int64, byID map[int64]*models.Category) bool {
	visited := map[int64]bool{id: true}

	node := byID[id]
	for node != nil && node.ParentID != nil {
		parent := *node.ParentID
		if parent == id {
			return true
		}
		if visited[parent] {
			return false
		}
		visited[parent] = true
		node = byID[parent]
	}
	return false
}
