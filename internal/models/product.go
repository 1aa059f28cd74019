package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the stored catalog document. RoappID is the identifier assigned
// by the retail platform and is the only id ever exposed to clients; the
// Mongo _id stays internal.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RoappID     int64              `bson:"roappId" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Stock       int                `bson:"stock" json:"stock"`
	Images      StringList         `bson:"images" json:"images"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Specs       StringList         `bson:"specs" json:"specs"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
