package api

import (
	"strconv"
	"strings"

	"github.com/plateful/plateful-backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// NamedObject is an embedded tag or ingredient in a recipe payload,
// identified by name only.
type NamedObject struct {
	Name string `json:"name" binding:"required"`
}

type CreateRecipeRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	TimeMinutes int           `json:"time_minutes" binding:"required"`
	Price       float64       `json:"price" binding:"required"`
	Link        string        `json:"link"`
	Tags        []NamedObject `json:"tags"`
	Ingredients []NamedObject `json:"ingredients"`
}

// UpdateRecipeRequest is a partial update: nil fields are untouched, and a
// present-but-empty tags or ingredients list clears that relation set.
type UpdateRecipeRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	TimeMinutes *int           `json:"time_minutes"`
	Price       *float64       `json:"price"`
	Link        *string        `json:"link"`
	Tags        *[]NamedObject `json:"tags"`
	Ingredients *[]NamedObject `json:"ingredients"`
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// RecipeSummary is the listing representation: no description, no relation
// details beyond what the filter needs.
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
}

func toRecipeSummary(r models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.ImagePath,
	}
}

func namesOf(objects []NamedObject) []string {
	names := make([]string, 0, len(objects))
	for _, o := range objects {
		names = append(names, o.Name)
	}
	return names
}

// parseIDList parses a comma-separated id list query parameter. Malformed
// entries are skipped.
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
