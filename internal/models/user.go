package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery point (Nova Poshta city + warehouse).
type Address struct {
	ID           string `bson:"id" json:"id"`
	Title        string `bson:"title" json:"title"`
	City         string `bson:"city" json:"city"`
	CityRef      string `bson:"cityRef" json:"cityRef"`
	Warehouse    string `bson:"warehouse" json:"warehouse"`
	WarehouseRef string `bson:"warehouseRef" json:"warehouseRef"`
	IsDefault    bool   `bson:"isDefault" json:"isDefault"`
}

// User represents a storefront account. Admins are regular users with the
// admin role.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
