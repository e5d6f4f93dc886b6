package models

// Group represents a topic that posts may belong to
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string `gorm:"type:varchar(200);not null;column:title"`
	Slug        string `gorm:"type:varchar(50);not null;uniqueIndex:yt_groups_ux1;column:slug"`
	Description string `gorm:"type:text;not null;default:'';column:description"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "yt_groups"
}
