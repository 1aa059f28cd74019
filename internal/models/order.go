package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem represents a single product entry within an order.
type OrderItem struct {
	ProductID int64   `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// OrderDelivery captures Nova Poshta delivery details chosen at checkout.
type OrderDelivery struct {
	City         string `bson:"city" json:"city"`
	CityRef      string `bson:"cityRef" json:"cityRef"`
	Warehouse    string `bson:"warehouse" json:"warehouse"`
	WarehouseRef string `bson:"warehouseRef" json:"warehouseRef"`
	Recipient    string `bson:"recipient" json:"recipient"`
	Phone        string `bson:"phone" json:"phone"`
}

// Order defines the persisted order document. Reference is our uuid handed to
// the payment provider; InvoiceID is Monobank's id for the same payment.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Reference     string              `bson:"reference" json:"reference"`
	UserID        *primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []OrderItem         `bson:"items" json:"items"`
	TotalPrice    float64             `bson:"totalPrice" json:"totalPrice"`
	Delivery      OrderDelivery       `bson:"delivery" json:"delivery"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	InvoiceID     string              `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`
	Status        string              `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}

// Order statuses driven by the Monobank webhook.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)
