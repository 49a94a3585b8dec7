package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TagList stores an article's tags as a single comma-joined column so the
// listing filter can substring-match the stored representation.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported tag list type %T", value)
	}
	if raw == "" {
		*t = TagList{}
		return nil
	}
	*t = strings.Split(raw, ",")
	return nil
}

// Article is a post authored by a user. The author relation is set at
// creation and never reassigned.
type Article struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Slug           string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Title          string    `json:"title" gorm:"size:255;not null"`
	Description    string    `json:"description" gorm:"size:1024"`
	Body           string    `json:"body" gorm:"type:text"`
	TagList        TagList   `json:"tagList" gorm:"type:varchar(1024)"`
	FavoritesCount int       `json:"favoritesCount" gorm:"not null;default:0"`
	AuthorID       uint      `json:"-" gorm:"not null;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}
