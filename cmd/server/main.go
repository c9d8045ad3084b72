package main

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/qurbanku/internal/config"
	"github.com/example/qurbanku/internal/database"
	"github.com/example/qurbanku/internal/routes"
	"github.com/example/qurbanku/internal/services"
	"github.com/example/qurbanku/internal/utils"
)

func main() {
	cfg := config.Load()
	log := utils.NewLogger("qurbanku", cfg.AppEnv)
	db := database.Connect(cfg.DatabaseURL)

	var storage *services.StorageService
	if cfg.GCSBucket != "" {
		svc, err := services.NewStorageService(context.Background(), cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize storage client")
		}
		storage = svc
	} else {
		log.Warn("GCS_BUCKET not set, storage endpoints disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Qurbanku Backend",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, storage, log)

	log.WithField("port", cfg.AppPort).Info("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.WithError(err).Fatal("fiber.Listen error")
	}
}

// errorHandler folds every error into the response envelope. Explicit
// fiber errors keep their status and message; anything else is a 500
// with a generic message.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"result":  nil,
	})
}
