package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/api/presenters"
	"Go-Recipe-Chat/internal/middleware"
	"Go-Recipe-Chat/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		SearchByIngredients(c *fiber.Ctx) error
		GetByCategory(c *fiber.Ctx) error
		GetByCuisine(c *fiber.Ctx) error
		GetRecommendations(c *fiber.Ctx) error

		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		CheckFavorite(c *fiber.Ctx) error

		GetRecentViews(c *fiber.Ctx) error
		RecordRecentView(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetAllRecipes(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), id)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.SearchByText(c.Context(), c.Query("q"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSearchRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) SearchByIngredients(c *fiber.Ctx) error {
	req := new(domain.IngredientSearchRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
	}

	res, err := h.recipeService.SearchByIngredients(c.Context(), req.Ingredients)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSearchRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetByCategory(c *fiber.Ctx) error {
	res, err := h.recipeService.GetByCategory(c.Context(), c.Params("name"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetByCuisine(c *fiber.Ctx) error {
	res, err := h.recipeService.GetByCuisine(c.Context(), c.Params("name"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecommendations(c *fiber.Ctx) error {
	req := new(domain.RecommendationRequest)
	// the body is optional
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	res, err := h.recipeService.Recommend(c.Context(), req.Ingredients)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRecommend, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecommend)
}

func (h *recipeHandler) GetFavorites(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetFavorites, domain.ErrTokenNotFound)
	}

	res, err := h.recipeService.GetFavoriteRecipes(c.Context(), userID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetFavorites, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedAddFavorite, domain.ErrTokenNotFound)
	}
	req := new(domain.FavoriteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	if err := h.recipeService.ToggleFavorite(c.Context(), userID, req.RecipeID, true); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddFavorite, err)
	}
	return presenters.SuccessResponse(c, domain.FavoriteStatusResponse{IsFavorite: true}, fiber.StatusOK, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRemoveFavorite, domain.ErrTokenNotFound)
	}
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveFavorite, err)
	}

	if err := h.recipeService.ToggleFavorite(c.Context(), userID, recipeID, false); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRemoveFavorite, err)
	}
	return presenters.SuccessResponse(c, domain.FavoriteStatusResponse{IsFavorite: false}, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

func (h *recipeHandler) CheckFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCheckFavorite, domain.ErrTokenNotFound)
	}
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckFavorite, err)
	}

	isFavorite, err := h.recipeService.IsFavorite(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCheckFavorite, err)
	}
	return presenters.SuccessResponse(c, domain.FavoriteStatusResponse{IsFavorite: isFavorite}, fiber.StatusOK, domain.MessageSuccessCheckFavorite)
}

func (h *recipeHandler) GetRecentViews(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetRecentViews, domain.ErrTokenNotFound)
	}

	res, err := h.recipeService.GetRecentViews(c.Context(), userID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetRecentViews, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecentViews)
}

func (h *recipeHandler) RecordRecentView(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRecordRecentView, domain.ErrTokenNotFound)
	}
	req := new(domain.RecentViewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordRecentView, err)
	}

	if err := h.recipeService.RecordView(c.Context(), userID, req.RecipeID); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRecordRecentView, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessRecordRecentView)
}
