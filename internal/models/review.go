package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is immutable after creation. Product name and image are snapshotted
// so the review list survives catalog re-syncs that rename products.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    int64              `bson:"productId" json:"productId"`
	AuthorID     primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorName   string             `bson:"authorName" json:"authorName"`
	Rating       int                `bson:"rating" json:"rating"`
	Text         string             `bson:"text" json:"text"`
	ProductName  string             `bson:"productName" json:"productName"`
	ProductImage string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
