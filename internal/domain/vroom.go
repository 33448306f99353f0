package domain

import "time"

// Vroom is a user-owned storefront. Its product listing is derived at read
// time from the owner's available products, not stored as a relation.
type Vroom struct {
	ID             int64     `json:"id,string" form:"id"`
	UserID         int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	Name           string    `gorm:"index;size:100" json:"name" form:"name"`
	Description    string    `gorm:"size:2048" json:"description" form:"description"`
	Banner         string    `gorm:"size:1024" json:"banner" form:"banner"`
	FollowersCount int64     `json:"followers_count"`
	ViewsCount     int64     `json:"views_count"`
	Active         bool      `gorm:"index" json:"active" form:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Vroom) TableName() string {
	return "vrooms"
}
