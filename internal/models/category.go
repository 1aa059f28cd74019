package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category mirrors the retail platform's category tree. Path holds the
// ancestor roapp ids from root to immediate parent; it is derived during sync
// and cached for tree reconstruction, never authoritative.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RoappID   int64              `bson:"roappId" json:"id"`
	Name      string             `bson:"name" json:"name"`
	ParentID  *int64             `bson:"parentId" json:"parentId"`
	Path      []int64            `bson:"path" json:"path"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// Children is filled when the tree is assembled for the storefront.
	Children []*Category `bson:"-" json:"children,omitempty"`
}
