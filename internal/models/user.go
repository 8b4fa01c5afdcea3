package models

import "time"

// User is an account able to log in. Password holds the bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex:idx_usuarios_username" json:"username"`
	Email     string    `gorm:"size:120;not null;uniqueIndex:idx_usuarios_email" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "usuarios" }
