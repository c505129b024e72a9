package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anjiri1684/tutor_orm/cache"
	"github.com/anjiri1684/tutor_orm/client"
	config "github.com/anjiri1684/tutor_orm/configs"
	"github.com/anjiri1684/tutor_orm/database"
	"github.com/anjiri1684/tutor_orm/handlers"
	"github.com/anjiri1684/tutor_orm/jobs"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/metrics"
	"github.com/anjiri1684/tutor_orm/notifications"
	"github.com/anjiri1684/tutor_orm/routes"
	"github.com/anjiri1684/tutor_orm/services"
	"github.com/anjiri1684/tutor_orm/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

func main() {
	settings := config.Load()
	logger.Configure(logger.Config{Level: logger.Level(settings.LogLevel), Pretty: settings.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("🔥 database unavailable")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("🔥 migration failed")
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	opts := []client.Option{
		client.WithObserver(metrics.Observer{}),
		client.WithListener(hub.Listener()),
	}
	if settings.RedisURL != "" {
		rdb, err := cache.Connect(ctx, settings.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, record cache disabled")
		} else {
			defer rdb.Close()
			opts = append(opts, client.WithCache(cache.NewRedisStore(rdb, settings.CacheTTL)))
		}
	}
	orm, err := client.New(db, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("🔥 client setup failed")
	}
	defer orm.Close()

	var adminOrg uuid.UUID
	if settings.AdminOrgID != "" {
		adminOrg, err = uuid.Parse(settings.AdminOrgID)
		if err != nil {
			logger.Fatal().Err(err).Msg("🔥 ADMIN_ORG_ID is not a uuid")
		}
		if err := database.SeedRooms(ctx, db, adminOrg); err != nil {
			logger.Error().Err(err).Msg("seeding rooms failed")
		}
	}
	auth, err := handlers.NewAuth(settings.JWTSecret, settings.JWTTTL, settings.AdminEmail, settings.AdminPassword, adminOrg)
	if err != nil {
		logger.Fatal().Err(err).Msg("🔥 admin credentials unusable")
	}

	h := handlers.New(orm, auth)
	if settings.CloudinaryURL != "" {
		uploader, err := services.NewCloudinaryUploader(settings.CloudinaryURL, "invoices")
		if err != nil {
			logger.Error().Err(err).Msg("cloudinary unavailable, invoice documents disabled")
		} else {
			h.WithDocuments(services.ChromeRenderer{}, uploader)
		}
	}

	mailer := notifications.NewMailer(settings.BrevoAPIKey, settings.SenderEmail, settings.SenderName)
	scheduler := cron.New()
	if err := jobs.NewRunner(orm, mailer, settings.ArchiveAfter).Schedule(scheduler, settings.OverdueCron, settings.ArchiveCron); err != nil {
		logger.Fatal().Err(err).Msg("🔥 invalid job schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info().Str("overdue", settings.OverdueCron).Str("archive", settings.ArchiveCron).Msg("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Tutoring School Data API",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		BodyLimit:     16 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			logger.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Int("status", code).Msg("request error")
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(metrics.Middleware())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app, h, hub, settings.JWTSecret)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().Str("port", settings.Port).Msg("✅ Server is running")
	if err := app.Listen(":" + settings.Port); err != nil {
		logger.Fatal().Err(err).Msg("🔥 Server failed to start")
	}
}
