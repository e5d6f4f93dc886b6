package models

import (
	"strings"
	"time"
)

// User represents a registered author
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex:yt_users_ux1;column:username"`
	PasswordHash string    `gorm:"type:varchar(255);not null;default:'';column:password_hash"`
	FirstName    string    `gorm:"type:varchar(150);not null;default:'';column:first_name"`
	LastName     string    `gorm:"type:varchar(150);not null;default:'';column:last_name"`
	Email        string    `gorm:"type:varchar(254);not null;default:'';column:email"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "yt_users"
}

// DisplayName returns the full name, or the username when no name is set
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
