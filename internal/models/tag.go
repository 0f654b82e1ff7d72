package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels recipes for filtering. The (user_id, name) pair is the identity
// used for reuse-on-write, enforced by a composite unique index.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:63;not null;uniqueIndex:idx_tags_owner_name" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_owner_name" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
