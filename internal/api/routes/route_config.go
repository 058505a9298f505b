package routes

import (
	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/internal/api/handlers"
	"Go-Recipe-Chat/internal/middleware"
	"Go-Recipe-Chat/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	ChatHandler   handlers.ChatHandler
	UploadHandler handlers.UploadHandler
	SocketHandler handlers.SocketHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipes()
	c.Favorites()
	c.RecentViews()
	c.Chats()
	c.Uploads()
	c.Realtime()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works."})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("", c.UserHandler.CreateUser)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Put("/me/presence", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdatePresence)
		user.Get("/:userId/chats", c.ChatHandler.GetUserChats)
		user.Get("/:id", c.UserHandler.GetUser)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Post("/search/ingredients", c.RecipeHandler.SearchByIngredients)
	recipes.Get("/category/:name", c.RecipeHandler.GetByCategory)
	recipes.Get("/cuisine/:name", c.RecipeHandler.GetByCuisine)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)

	c.App.Post("/api/v1/ai/recommendations", c.RecipeHandler.GetRecommendations)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/v1/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	favorites.Get("", c.RecipeHandler.GetFavorites)
	favorites.Post("", c.RecipeHandler.AddFavorite)
	favorites.Delete("/:recipeId", c.RecipeHandler.RemoveFavorite)
	favorites.Get("/:recipeId/check", c.RecipeHandler.CheckFavorite)
}

func (c *Config) RecentViews() {
	recent := c.App.Group("/api/v1/recent", c.Middleware.AuthMiddleware(c.JWTService))
	recent.Get("", c.RecipeHandler.GetRecentViews)
	recent.Post("", c.RecipeHandler.RecordRecentView)
}

func (c *Config) Chats() {
	chats := c.App.Group("/api/v1/chats")
	chats.Post("", c.ChatHandler.CreateChat)
	chats.Get("/:id", c.ChatHandler.GetChat)
	chats.Get("/:chatId/messages", c.ChatHandler.GetMessages)
	chats.Post("/:chatId/messages", c.ChatHandler.SendMessage)

	c.App.Put("/api/v1/messages/:id/read", c.ChatHandler.MarkAsRead)
}

func (c *Config) Uploads() {
	c.App.Post("/api/v1/uploads", c.Middleware.AuthMiddleware(c.JWTService), c.UploadHandler.Upload)
}

func (c *Config) Realtime() {
	c.App.Get("/ws",
		c.SocketHandler.Upgrade,
		c.Middleware.AuthMiddleware(c.JWTService),
		c.SocketHandler.Serve(),
	)
}
