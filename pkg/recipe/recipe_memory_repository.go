package recipe

import (
	"context"
	"time"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/store"
)

type memoryRecipeRepository struct {
	store *store.Store
}

func NewMemoryRecipeRepository(st *store.Store) RecipeRepository {
	return &memoryRecipeRepository{store: st}
}

func (r *memoryRecipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		*recipe = tx.Recipes.Create(*recipe)
		return nil
	})
}

func (r *memoryRecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var out *entities.Recipe
	err := r.store.View(ctx, func(tx *store.Tx) error {
		recipe, ok := tx.Recipes.Get(id)
		if !ok {
			return domain.ErrRecipeNotFound
		}
		out = &recipe
		return nil
	})
	return out, err
}

func (r *memoryRecipeRepository) GetRecipesByIDs(ctx context.Context, ids []uint) ([]entities.Recipe, error) {
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []entities.Recipe
	err := r.store.View(ctx, func(tx *store.Tx) error {
		out = tx.Recipes.Filter(func(recipe entities.Recipe) bool { return wanted[recipe.ID] })
		return nil
	})
	return out, err
}

func (r *memoryRecipeRepository) GetAllRecipes(ctx context.Context) ([]entities.Recipe, error) {
	var out []entities.Recipe
	err := r.store.View(ctx, func(tx *store.Tx) error {
		out = tx.Recipes.List()
		return nil
	})
	return out, err
}

func (r *memoryRecipeRepository) AddFavorite(ctx context.Context, userID, recipeID uint, at time.Time) (*entities.Favorite, bool, error) {
	var (
		out     entities.Favorite
		created bool
	)
	err := r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Recipes.Get(recipeID); !ok {
			return domain.ErrRecipeNotFound
		}
		if existing, ok := tx.Favorites.Find(samePair[entities.Favorite](userID, recipeID, favoriteKey)); ok {
			out = existing
			return nil
		}
		out = tx.Favorites.Create(entities.Favorite{UserID: userID, RecipeID: recipeID, CreatedAt: at})
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

func (r *memoryRecipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	return r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		for _, f := range tx.Favorites.Filter(samePair[entities.Favorite](userID, recipeID, favoriteKey)) {
			tx.Favorites.Delete(f.ID)
		}
		return nil
	})
}

func (r *memoryRecipeRepository) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	var found bool
	err := r.store.View(ctx, func(tx *store.Tx) error {
		_, found = tx.Favorites.Find(samePair[entities.Favorite](userID, recipeID, favoriteKey))
		return nil
	})
	return found, err
}

func (r *memoryRecipeRepository) GetFavorites(ctx context.Context, userID uint) ([]entities.Favorite, error) {
	var out []entities.Favorite
	err := r.store.View(ctx, func(tx *store.Tx) error {
		out = tx.Favorites.Filter(func(f entities.Favorite) bool { return f.UserID == userID })
		return nil
	})
	return out, err
}

func (r *memoryRecipeRepository) RecordView(ctx context.Context, userID, recipeID uint, at time.Time) (*entities.RecentView, error) {
	var out entities.RecentView
	err := r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Recipes.Get(recipeID); !ok {
			return domain.ErrRecipeNotFound
		}
		for _, v := range tx.RecentViews.Filter(samePair[entities.RecentView](userID, recipeID, recentViewKey)) {
			tx.RecentViews.Delete(v.ID)
		}
		out = tx.RecentViews.Create(entities.RecentView{UserID: userID, RecipeID: recipeID, ViewedAt: at})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memoryRecipeRepository) GetRecentViews(ctx context.Context, userID uint) ([]entities.RecentView, error) {
	var out []entities.RecentView
	err := r.store.View(ctx, func(tx *store.Tx) error {
		out = tx.RecentViews.Filter(func(v entities.RecentView) bool { return v.UserID == userID })
		return nil
	})
	return out, err
}

func favoriteKey(f entities.Favorite) (uint, uint)     { return f.UserID, f.RecipeID }
func recentViewKey(v entities.RecentView) (uint, uint) { return v.UserID, v.RecipeID }

func samePair[T any](userID, recipeID uint, key func(T) (uint, uint)) func(T) bool {
	return func(v T) bool {
		u, r := key(v)
		return u == userID && r == recipeID
	}
}
