// File: entities/recipe.go
package entities

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Recipe struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Ingredients  []string   `gorm:"serializer:json;type:text" json:"ingredients"`
	Instructions []string   `gorm:"serializer:json;type:text" json:"instructions"`
	PrepTime     int        `json:"prepTime"` // minutes
	CookTime     int        `json:"cookTime"` // minutes
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Cuisine      string     `gorm:"index" json:"cuisine"`
	Category     string     `gorm:"index" json:"category"`
	ImageURL     *string    `json:"imageUrl"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"reviewCount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorite_user_recipe;not null" json:"userId"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_favorite_user_recipe;not null" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"uniqueIndex:idx_recent_view_user_recipe;not null" json:"userId"`
	RecipeID uint      `gorm:"uniqueIndex:idx_recent_view_user_recipe;not null" json:"recipeId"`
	ViewedAt time.Time `gorm:"index" json:"viewedAt"`
}
