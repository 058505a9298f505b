package recipe

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipesByIDs(ctx context.Context, ids []uint) ([]entities.Recipe, error)
		GetAllRecipes(ctx context.Context) ([]entities.Recipe, error)

		// AddFavorite stores the (user, recipe) pair unless it already
		// exists; created is false for the existing pair.
		AddFavorite(ctx context.Context, userID, recipeID uint, at time.Time) (favorite *entities.Favorite, created bool, err error)
		RemoveFavorite(ctx context.Context, userID, recipeID uint) error
		IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
		GetFavorites(ctx context.Context, userID uint) ([]entities.Favorite, error)

		// RecordView replaces any earlier view of the pair with a new one.
		RecordView(ctx context.Context, userID, recipeID uint, at time.Time) (*entities.RecentView, error)
		GetRecentViews(ctx context.Context, userID uint) ([]entities.RecentView, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	return getRecipe(r.db.WithContext(ctx), id)
}

func getRecipe(db *gorm.DB, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := db.Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByIDs(ctx context.Context, ids []uint) ([]entities.Recipe, error) {
	recipes := make([]entities.Recipe, 0, len(ids))
	if len(ids) == 0 {
		return recipes, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetAllRecipes(ctx context.Context) ([]entities.Recipe, error) {
	recipes := make([]entities.Recipe, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uint, at time.Time) (*entities.Favorite, bool, error) {
	var (
		favorite entities.Favorite
		created  bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getRecipe(tx, recipeID); err != nil {
			return err
		}

		// Check if already a favorite
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&favorite).Error
		if err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		favorite = entities.Favorite{UserID: userID, RecipeID: recipeID, CreatedAt: at}
		if err := tx.Create(&favorite).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent add of the same pair
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&favorite).Error; err != nil {
			return nil, false, err
		}
		return &favorite, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &favorite, created, nil
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *recipeRepository) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetFavorites(ctx context.Context, userID uint) ([]entities.Favorite, error) {
	favorites := make([]entities.Favorite, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *recipeRepository) RecordView(ctx context.Context, userID, recipeID uint, at time.Time) (*entities.RecentView, error) {
	var view entities.RecentView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getRecipe(tx, recipeID); err != nil {
			return err
		}
		if err := tx.
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&entities.RecentView{}).Error; err != nil {
			return err
		}
		view = entities.RecentView{UserID: userID, RecipeID: recipeID, ViewedAt: at}
		return tx.Create(&view).Error
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *recipeRepository) GetRecentViews(ctx context.Context, userID uint) ([]entities.RecentView, error) {
	views := make([]entities.RecentView, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at desc, id desc").
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
