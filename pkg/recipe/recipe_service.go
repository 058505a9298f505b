package recipe

import (
	"context"
	"sort"
	"strings"
	"time"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/utils/logger"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (*entities.Recipe, error)
		GetRecipe(ctx context.Context, id uint) (*entities.Recipe, error)
		GetAllRecipes(ctx context.Context) ([]entities.Recipe, error)
		SearchByIngredients(ctx context.Context, ingredients []string) ([]entities.Recipe, error)
		SearchByText(ctx context.Context, query string) ([]entities.Recipe, error)
		GetByCategory(ctx context.Context, category string) ([]entities.Recipe, error)
		GetByCuisine(ctx context.Context, cuisine string) ([]entities.Recipe, error)
		Recommend(ctx context.Context, ingredients []string) ([]entities.Recipe, error)

		ToggleFavorite(ctx context.Context, userID, recipeID uint, add bool) error
		IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
		GetFavoriteRecipes(ctx context.Context, userID uint) ([]entities.Recipe, error)

		RecordView(ctx context.Context, userID, recipeID uint) error
		GetRecentViews(ctx context.Context, userID uint) ([]domain.RecentRecipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		log              *logger.Logger
		now              func() time.Time
	}
)

func NewRecipeService(recipeRepository RecipeRepository, log *logger.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		log:              log.With("service", "RecipeService"),
		now:              time.Now,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (*entities.Recipe, error) {
	recipe := &entities.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   entities.Difficulty(req.Difficulty),
		Cuisine:      req.Cuisine,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Rating:       req.Rating,
		ReviewCount:  req.ReviewCount,
		CreatedAt:    s.now(),
	}
	if recipe.Title == "" {
		return nil, domain.InvalidArgument("title is required")
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	s.log.Info("recipe created", "recipeId", recipe.ID, "title", recipe.Title)
	return recipe, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint) (*entities.Recipe, error) {
	return s.recipeRepository.GetRecipeByID(ctx, id)
}

func (s *recipeService) GetAllRecipes(ctx context.Context) ([]entities.Recipe, error) {
	return s.recipeRepository.GetAllRecipes(ctx)
}

func (s *recipeService) SearchByIngredients(ctx context.Context, ingredients []string) ([]entities.Recipe, error) {
	if len(normalizeTerms(ingredients)) == 0 {
		return []entities.Recipe{}, nil
	}
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return filterByIngredients(recipes, ingredients), nil
}

func (s *recipeService) SearchByText(ctx context.Context, query string) ([]entities.Recipe, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return filterByText(recipes, q), nil
}

func (s *recipeService) GetByCategory(ctx context.Context, category string) ([]entities.Recipe, error) {
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return filterByField(recipes, category, func(r entities.Recipe) string { return r.Category }), nil
}

func (s *recipeService) GetByCuisine(ctx context.Context, cuisine string) ([]entities.Recipe, error) {
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return filterByField(recipes, cuisine, func(r entities.Recipe) string { return r.Cuisine }), nil
}

// Recommend is a filter, sort and cap over the catalogue: recipes matching
// the given ingredients (or every recipe when none are given), best rated
// first.
func (s *recipeService) Recommend(ctx context.Context, ingredients []string) ([]entities.Recipe, error) {
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if len(normalizeTerms(ingredients)) > 0 {
		recipes = filterByIngredients(recipes, ingredients)
	}
	return topRated(recipes, domain.RecommendationLimit), nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, userID, recipeID uint, add bool) error {
	if !add {
		return s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	}
	_, created, err := s.recipeRepository.AddFavorite(ctx, userID, recipeID, s.now())
	if err != nil {
		return err
	}
	if !created {
		s.log.Debug("favorite already present", "userId", userID, "recipeId", recipeID)
	}
	return nil
}

func (s *recipeService) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.recipeRepository.IsFavorite(ctx, userID, recipeID)
}

// GetFavoriteRecipes returns the user's favorite recipes, newest favorite
// first.
func (s *recipeService) GetFavoriteRecipes(ctx context.Context, userID uint) ([]entities.Recipe, error) {
	favorites, err := s.recipeRepository.GetFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		if !favorites[i].CreatedAt.Equal(favorites[j].CreatedAt) {
			return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
		}
		return favorites[i].ID > favorites[j].ID
	})

	ids := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.RecipeID)
	}
	byID, err := s.recipesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Recipe, 0, len(favorites))
	for _, f := range favorites {
		if r, ok := byID[f.RecipeID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *recipeService) RecordView(ctx context.Context, userID, recipeID uint) error {
	_, err := s.recipeRepository.RecordView(ctx, userID, recipeID, s.now())
	return err
}

// GetRecentViews returns at most RecentViewLimit recipes, most recently
// viewed first. Each recipe appears once.
func (s *recipeService) GetRecentViews(ctx context.Context, userID uint) ([]domain.RecentRecipe, error) {
	views, err := s.recipeRepository.GetRecentViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].ViewedAt.Equal(views[j].ViewedAt) {
			return views[i].ViewedAt.After(views[j].ViewedAt)
		}
		return views[i].ID > views[j].ID
	})

	seen := make(map[uint]bool, len(views))
	latest := make([]entities.RecentView, 0, domain.RecentViewLimit)
	for _, v := range views {
		if seen[v.RecipeID] {
			continue
		}
		seen[v.RecipeID] = true
		latest = append(latest, v)
		if len(latest) == domain.RecentViewLimit {
			break
		}
	}

	ids := make([]uint, 0, len(latest))
	for _, v := range latest {
		ids = append(ids, v.RecipeID)
	}
	byID, err := s.recipesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RecentRecipe, 0, len(latest))
	for _, v := range latest {
		if r, ok := byID[v.RecipeID]; ok {
			out = append(out, domain.RecentRecipe{Recipe: r, ViewedAt: v.ViewedAt})
		}
	}
	return out, nil
}

func (s *recipeService) recipesByID(ctx context.Context, ids []uint) (map[uint]entities.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]entities.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	return byID, nil
}
