package models

import "time"

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null" validate:"required,max=100"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required"`
	AuthorID  uint      `json:"author_id" gorm:"index:idx_posts_author_created;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_posts_created"`
}
