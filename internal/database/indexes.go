package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	roappIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "roappId", Value: 1}},
		Options: options.Index().
			SetName("roappId_unique").
			SetUnique(true),
	}

	// Text index backing the relevance search on the catalog endpoint.
	textIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
		Options: options.Index().
			SetName("product_text").
			SetWeights(bson.M{"name": 10, "description": 2}),
	}

	log.Println("EnsureProductIndexes: creating roappId_unique and product_text indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{roappIDIndex, textIndex})
	if err != nil {
		log.Println("EnsureProductIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureCategoryIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("categories").Indexes()

	roappIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "roappId", Value: 1}},
		Options: options.Index().
			SetName("roappId_unique").
			SetUnique(true),
	}

	log.Println("EnsureCategoryIndexes: creating roappId_unique index")
	_, err := indexes.CreateOne(ctx, roappIDIndex)
	if err != nil {
		log.Println("EnsureCategoryIndexes: roappId index error:", err)
		return err
	}
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reviews").Indexes()

	productIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetName("productId_index"),
	}

	log.Println("EnsureReviewIndexes: creating productId_index index")
	_, err := indexes.CreateOne(ctx, productIDIndex)
	if err != nil {
		log.Println("EnsureReviewIndexes: productId index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	invoiceIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "invoiceId", Value: 1}},
		Options: options.Index().
			SetName("invoiceId_index").
			SetPartialFilterExpression(bson.M{
				"invoiceId": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureOrderIndexes: creating invoiceId_index index")
	_, err := indexes.CreateOne(ctx, invoiceIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: invoiceId index error:", err)
		return err
	}
	return nil
}
