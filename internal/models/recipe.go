package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is owned by exactly one user. IDs are monotonically assigned, so
// ordering by id descending yields most-recently-created first.
type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       float64      `gorm:"type:numeric(5,2);not null" json:"price"`
	Link        string       `gorm:"size:1023" json:"link"`
	ImagePath   string       `gorm:"size:255" json:"image"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}
