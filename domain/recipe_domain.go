package domain

import (
	"fmt"
	"time"

	"Go-Recipe-Chat/entities"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessSearchRecipes    = "success search recipes"
	MessageSuccessRecommend        = "success get recommendations"
	MessageSuccessGetFavorites     = "success get favorites"
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessCheckFavorite    = "success check favorite"
	MessageSuccessGetRecentViews   = "success get recent views"
	MessageSuccessRecordRecentView = "recent view recorded"

	MessageFailedGetRecipes       = "failed to get recipes"
	MessageFailedGetRecipeDetail  = "failed to get recipe detail"
	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedSearchRecipes    = "failed to search recipes"
	MessageFailedRecommend        = "failed to get recommendations"
	MessageFailedGetFavorites     = "failed to get favorites"
	MessageFailedAddFavorite      = "failed to add favorite"
	MessageFailedRemoveFavorite   = "failed to remove favorite"
	MessageFailedCheckFavorite    = "failed to check favorite status"
	MessageFailedGetRecentViews   = "failed to get recent views"
	MessageFailedRecordRecentView = "failed to record recent view"

	ErrRecipeNotFound = fmt.Errorf("recipe %w", ErrNotFound)
	ErrEmptyQuery     = fmt.Errorf("%w: query parameter 'q' is required", ErrInvalidArgument)
)

const (
	// RecommendationLimit caps the recommendation list.
	RecommendationLimit = 5
	// RecentViewLimit caps the recent views list returned for a user.
	RecentViewLimit = 10
)

type (
	CreateRecipeRequest struct {
		Title        string   `json:"title" validate:"required,max=200"`
		Description  string   `json:"description" validate:"max=2000"`
		Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
		Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
		PrepTime     int      `json:"prepTime" validate:"min=0"`
		CookTime     int      `json:"cookTime" validate:"min=0"`
		Servings     int      `json:"servings" validate:"required,min=1"`
		Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
		Cuisine      string   `json:"cuisine" validate:"required"`
		Category     string   `json:"category" validate:"required"`
		ImageURL     *string  `json:"imageUrl" validate:"omitempty,url"`
		Rating       float64  `json:"rating" validate:"min=0,max=5"`
		ReviewCount  int      `json:"reviewCount" validate:"min=0"`
	}

	IngredientSearchRequest struct {
		Ingredients []string `json:"ingredients" validate:"required"`
	}

	RecommendationRequest struct {
		Ingredients []string `json:"ingredients"`
	}

	FavoriteRequest struct {
		RecipeID uint `json:"recipeId" validate:"required"`
	}

	RecentViewRequest struct {
		RecipeID uint `json:"recipeId" validate:"required"`
	}

	FavoriteStatusResponse struct {
		IsFavorite bool `json:"isFavorite"`
	}

	RecentRecipe struct {
		entities.Recipe
		ViewedAt time.Time `json:"viewedAt"`
	}
)
