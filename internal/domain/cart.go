package domain

import "time"

// CartItem holds one (user, product) line. Adding a product already in the
// cart increments Quantity on the existing row instead of inserting.
type CartItem struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index;uniqueIndex:uk_cart_user_product" json:"user_id,string"`
	ProductID int64     `gorm:"index;uniqueIndex:uk_cart_user_product" json:"product_id,string"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}
