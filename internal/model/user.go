package model

import "time"

// User is an account that can author and favorite articles.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Bio          string    `json:"bio" gorm:"size:1024;default:''"`
	Image        string    `json:"image" gorm:"size:1024;default:''"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Articles  []Article `json:"-" gorm:"foreignKey:AuthorID"`
	Favorites []Article `json:"-" gorm:"many2many:user_favorites"`
}
