package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses is the closed set of accepted order states. Transitions
// between them are not restricted.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ShippingAddress is embedded into orders with a ship_ column prefix.
type ShippingAddress struct {
	Name       string `gorm:"size:100" json:"name" form:"name"`
	Phone      string `gorm:"size:32" json:"phone" form:"phone"`
	Street     string `gorm:"size:255" json:"street" form:"street"`
	City       string `gorm:"size:100" json:"city" form:"city"`
	State      string `gorm:"size:100" json:"state" form:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code" form:"postal_code"`
	Country    string `gorm:"size:100" json:"country" form:"country"`
}

// Order is a single-product pay-on-delivery purchase. SellerID is
// denormalized from the product owner at creation time.
type Order struct {
	ID              int64           `json:"id,string"`
	BuyerID         int64           `gorm:"index" json:"buyer_id,string"`
	SellerID        int64           `gorm:"index" json:"seller_id,string"`
	ProductID       int64           `gorm:"index" json:"product_id,string"`
	Quantity        int             `json:"quantity"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status          string          `gorm:"index;size:16" json:"status"`
	PaymentMethod   string          `gorm:"size:32" json:"payment_method"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// ValidOrderStatus reports whether s is one of the accepted order states.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
