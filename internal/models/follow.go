package models

import (
	"time"
)

// Follow represents a subscription of UserID to the posts of AuthorID
type Follow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;uniqueIndex:yt_follows_ux1;column:user_id"`
	AuthorID  int64     `gorm:"not null;uniqueIndex:yt_follows_ux1;index:yt_follows_ix1;check:yt_follows_chk1,user_id <> author_id;column:author_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "yt_follows"
}
