package models

import (
	"time"
)

// Post represents an authored entry
type Post struct {
	ID       int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Text     string    `gorm:"type:text;not null;column:text"`
	PubDate  time.Time `gorm:"not null;index:yt_posts_ix1;column:pub_date"`
	AuthorID int64     `gorm:"not null;index:yt_posts_ix2;column:author_id"`
	GroupID  *int64    `gorm:"index:yt_posts_ix3;column:group_id"`
	Image    string    `gorm:"type:varchar(255);not null;default:'';column:image"`

	// Relationships
	Author *User  `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Group  *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "yt_posts"
}

// InGroup reports whether the post belongs to the group with the given ID
func (p *Post) InGroup(groupID int64) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}
