package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a recipe component, owned by one user. Same reuse-on-write
// identity rule as Tag.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_owner_name" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredients_owner_name" json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
