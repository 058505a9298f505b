package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"Go-Recipe-Chat/internal/api/handlers"
	"Go-Recipe-Chat/internal/api/routes"
	"Go-Recipe-Chat/internal/middleware"
	"Go-Recipe-Chat/internal/realtime"
	"Go-Recipe-Chat/internal/utils"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/internal/utils/mailing"
	"Go-Recipe-Chat/internal/utils/storage"
	"Go-Recipe-Chat/pkg/chat"
	"Go-Recipe-Chat/pkg/jwt"
	"Go-Recipe-Chat/pkg/recipe"
	"Go-Recipe-Chat/pkg/user"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// NewApp wires services and handlers over repos and starts forwarding bus
// traffic to local sockets until ctx is done.
func NewApp(ctx context.Context, cfg utils.Config, repos Repositories, bus realtime.Bus, log *logger.Logger) (*fiber.App, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	utils.InitValidator()
	middlewares := middleware.NewMiddleware(cfg.CORSOrigins, log)
	validator := utils.Validate

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: cfg.LogMode == "development",
		ErrorHandler:      middlewares.ErrorHandler(),
	})

	// setting up logging and limiter
	output, err := accessLogOutput(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     output,
	}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Second,
			Next: func(c *fiber.Ctx) bool {
				// long lived sockets are not rate limited
				return c.Path() == "/ws"
			},
		}))
	}

	// utils
	s3, err := storage.NewAwsS3(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig(cfg))

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	userService := user.NewUserService(repos.User, jwtService, mailer, cfg.AppURL, log)
	recipeService := recipe.NewRecipeService(repos.Recipe, log)
	chatService := chat.NewChatService(repos.Chat, log)

	// Realtime
	broadcaster := realtime.NewBroadcaster(realtime.NewHub(log), bus, chatService, userService, log)
	if err := broadcaster.Start(ctx); err != nil {
		return nil, err
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	chatHandler := handlers.NewChatHandler(chatService, broadcaster, validator, log)
	uploadHandler := handlers.NewUploadHandler(s3)
	socketHandler := handlers.NewSocketHandler(broadcaster)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		ChatHandler:   chatHandler,
		UploadHandler: uploadHandler,
		SocketHandler: socketHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
}
