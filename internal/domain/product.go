package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item posted by a user. Counter columns are
// denormalized from the edge tables and bumped in place.
type Product struct {
	ID            int64           `json:"id,string" form:"id"`
	UserID        int64           `gorm:"index" json:"user_id,string" form:"user_id"`
	Title         string          `gorm:"index;size:200" json:"title" form:"title"`
	Description   string          `gorm:"size:4096" json:"description" form:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price" form:"price"`
	Image         string          `gorm:"size:1024" json:"image" form:"image"`
	Images        []string        `gorm:"serializer:json" json:"images" form:"images"`
	Hashtags      []string        `gorm:"serializer:json" json:"hashtags" form:"hashtags"`
	Category      string          `gorm:"index;size:64" json:"category" form:"category"`
	Stock         int             `json:"stock" form:"stock"`
	Available     bool            `gorm:"index" json:"available" form:"available"`
	LikesCount    int64           `json:"likes_count"`
	SharesCount   int64           `json:"shares_count"`
	CommentsCount int64           `json:"comments_count"`
	ViewsCount    int64           `json:"views_count"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
