package roapp

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bitzone/internal/cache"
	"bitzone/internal/models"
)

// CategoryTreeCacheKey is invalidated whenever a sync touches categories.
const CategoryTreeCacheKey = "categories:tree"

// Syncer mirrors the ROAPP catalog into our collections. Upserts are keyed by
// roappId, so repeated syncs converge instead of duplicating.
type Syncer struct {
	db     *mongo.Database
	client *Client
	cache  *cache.Cache
}

func NewSyncer(db *mongo.Database, client *Client, c *cache.Cache) *Syncer {
	return &Syncer{db: db, client: client, cache: c}
}

func (s *Syncer) SyncAll(ctx context.Context) error {
	if _, err := s.SyncCategories(ctx); err != nil {
		return err
	}
	_, err := s.SyncProducts(ctx)
	return err
}

// SyncCategories pulls the category list, computes ancestor paths and upserts
// every valid record. Records missing required fields are skipped with a log
// line and the sync continues.
func (s *Syncer) SyncCategories(ctx context.Context) (int, error) {
	raws, err := s.client.FetchCategories(ctx)
	if err != nil {
		return 0, err
	}

	categories := make([]models.Category, 0, len(raws))
	parents := make(map[int64]*int64, len(raws))

	for _, raw := range raws {
		category, err := raw.Normalize()
		if err != nil {
			log.Printf("[SYNC] skipping category record (id=%d): %v", int64(raw.ID), err)
			continue
		}
		categories = append(categories, category)
		parents[category.RoappID] = category.ParentID
	}

	synced := 0
	for _, category := range categories {
		category.Path = ancestorPath(category.RoappID, parents)

		filter := bson.M{"roappId": category.RoappID}
		update := bson.M{
			"$set": bson.M{
				"name":     category.Name,
				"parentId": category.ParentID,
				"path":     category.Path,
			},
			"$setOnInsert": bson.M{
				"createdAt": time.Now(),
			},
		}

		_, err := s.db.Collection("categories").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Printf("[SYNC] category %d upsert failed: %v", category.RoappID, err)
			continue
		}
		synced++
	}

	s.cache.Delete(ctx, CategoryTreeCacheKey)

	log.Printf("[SYNC] categories: %d of %d records synced", synced, len(raws))
	return synced, nil
}

// SyncProducts pulls the paged goods listing and upserts every valid record.
func (s *Syncer) SyncProducts(ctx context.Context) (int, error) {
	raws, err := s.client.FetchProducts(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, raw := range raws {
		product, err := raw.Normalize()
		if err != nil {
			log.Printf("[SYNC] skipping product record (id=%d): %v", int64(raw.ID), err)
			continue
		}

		if err := s.upsertProduct(ctx, product); err != nil {
			log.Printf("[SYNC] product %d upsert failed: %v", product.RoappID, err)
			continue
		}
		synced++
	}

	log.Printf("[SYNC] products: %d of %d records synced", synced, len(raws))
	return synced, nil
}

// SyncProduct re-syncs a single good, for webhook ingestion. A good deleted
// upstream is removed locally.
func (s *Syncer) SyncProduct(ctx context.Context, id int64) error {
	raw, err := s.client.FetchProduct(ctx, id)
	if err != nil {
		return err
	}

	if raw == nil {
		_, err := s.db.Collection("products").DeleteOne(ctx, bson.M{"roappId": id})
		return err
	}

	product, err := raw.Normalize()
	if err != nil {
		log.Printf("[SYNC] skipping product record (id=%d): %v", id, err)
		return nil
	}
	return s.upsertProduct(ctx, product)
}

func (s *Syncer) upsertProduct(ctx context.Context, product models.Product) error {
	filter := bson.M{"roappId": product.RoappID}
	update := bson.M{
		"$set": bson.M{
			"name":        product.Name,
			"price":       product.Price,
			"category":    product.Category,
			"stock":       product.Stock,
			"images":      product.Images,
			"description": product.Description,
			"specs":       product.Specs,
			"createdAt":   product.CreatedAt,
			"updatedAt":   time.Now(),
		},
	}

	_, err := s.db.Collection("products").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ancestorPath walks the parent chain from root to immediate parent. The
// visited set bounds the walk: a self-reference or a mutual cycle stops the
// traversal and keeps the partial path instead of failing the sync.
func ancestorPath(id int64, parents map[int64]*int64) []int64 {
	path := make([]int64, 0, 4)
	visited := map[int64]bool{id: true}

	current := parents[id]
	for current != nil {
		parent := *current
		if visited[parent] {
			log.Printf("[SYNC] category cycle detected at %d, keeping partial path", parent)
			break
		}
		visited[parent] = true
		path = append(path, parent)
		current = parents[parent]
	}

	// Collected child-to-root; the stored path reads root-to-parent.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
