package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/nibble/internal/api"
)

const (
	requestBodyLimit = 16 << 20
	shutdownTimeout  = 10 * time.Second
)

func runServer(ctx context.Context, env *environment, cfg config, port string) error {
	secretKey, err := env.services.Auth.SessionSecret(cfg.SecretKey)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Services:     env.services,
		SecretKey:    secretKey,
		Location:     cfg.Location,
		I18n:         env.i18n,
		CookieSecure: cfg.CookieSecure,
		Logger:       env.logger,
	})
	if err != nil {
		return err
	}
	app := newFiberApp(handler, cfg.WebDir)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			env.logger.Error("server shutdown failed", "error", err)
		}
	}()

	env.logger.Info("nibble listening",
		"addr", "http://0.0.0.0:"+port,
		"driver", cfg.Driver,
		"tz", cfg.Location.String(),
	)
	return app.Listen(":" + port)
}

func newFiberApp(handler *api.Handler, webDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Nibble",
		DisableStartupMessage: true,
		BodyLimit:             requestBodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		app.Static("/", webDir)
	}
	app.Use(handler.NotFound)
	return app
}
