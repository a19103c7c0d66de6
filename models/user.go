package models

import "time"

// DefaultAvatar est servi quand l'utilisateur n'a pas d'avatar custom.
const DefaultAvatar = "default.jpg"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:32;uniqueIndex;not null" validate:"required,min=3,max=32"`
	Email     string    `json:"email" gorm:"size:120;uniqueIndex;not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"size:60;not null" validate:"required,min=8"`
	Avatar    string    `json:"avatar" gorm:"size:80;not null;default:'default.jpg'"`
	CreatedAt time.Time `json:"created_at"`
}
