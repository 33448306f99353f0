package domain

import "time"

// Follow is a directed follower -> following edge between two users.
// The composite unique index keeps duplicate edges out at the storage layer.
type Follow struct {
	ID          int64     `json:"id,string"`
	FollowerID  int64     `gorm:"index;uniqueIndex:uk_follow_edge" json:"follower_id,string"`
	FollowingID int64     `gorm:"index;uniqueIndex:uk_follow_edge" json:"following_id,string"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (Follow) TableName() string {
	return "user_follows"
}

type VroomFollow struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index;uniqueIndex:uk_vroom_follow" json:"user_id,string"`
	VroomID   int64     `gorm:"index;uniqueIndex:uk_vroom_follow" json:"vroom_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (VroomFollow) TableName() string {
	return "vroom_follows"
}

type ProductLike struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index;uniqueIndex:uk_product_like" json:"user_id,string"`
	ProductID int64     `gorm:"index;uniqueIndex:uk_product_like" json:"product_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductLike) TableName() string {
	return "product_likes"
}

type ProductBookmark struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index;uniqueIndex:uk_product_bookmark" json:"user_id,string"`
	ProductID int64     `gorm:"index;uniqueIndex:uk_product_bookmark" json:"product_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductBookmark) TableName() string {
	return "product_bookmarks"
}

// Comment belongs to a product; ParentID links a reply to its parent
// comment. Only one reply level is traversed by reads.
type Comment struct {
	ID        int64     `json:"id,string"`
	ProductID int64     `gorm:"index" json:"product_id,string"`
	UserID    int64     `gorm:"index" json:"user_id,string"`
	ParentID  *int64    `gorm:"index" json:"parent_id,string,omitempty"`
	Content   string    `gorm:"size:2048" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Comment) TableName() string {
	return "product_comments"
}
