package domain

import (
	"time"
)

type User struct {
	ID             int64     `json:"id,string" form:"id"`
	Username       string    `gorm:"uniqueIndex;size:64" json:"username" form:"username"`
	Email          string    `gorm:"uniqueIndex;size:255" json:"email" form:"email"`
	Password       string    `json:"-" form:"-"`
	Realname       string    `json:"realname" form:"realname"`
	Bio            string    `gorm:"size:512" json:"bio" form:"bio"`
	Location       string    `json:"location" form:"location"`
	Website        string    `json:"website" form:"website"`
	Avatar         string    `gorm:"size:1024" json:"avatar" form:"avatar"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	Status         string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin      time.Time `json:"last_login"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// Session is a login session record; expired rows are purged by a
// background job.
type Session struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `gorm:"index" json:"user_id,string"`
	Token     string    `gorm:"uniqueIndex;size:128" json:"token"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (Session) TableName() string {
	return "sessions"
}
