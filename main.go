package main

import (
	"log"

	"github.com/Romain-GUILLEMOT/PlumyrBack/api"
	"github.com/Romain-GUILLEMOT/PlumyrBack/config"
	"github.com/Romain-GUILLEMOT/PlumyrBack/db"
	"github.com/Romain-GUILLEMOT/PlumyrBack/handlers"
	"github.com/Romain-GUILLEMOT/PlumyrBack/handlers/auth"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env introuvable, on continue avec l'environnement.")
	}
	utils.InitLogger()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		utils.Fatal("JWT_SECRET manquant")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10 MB
	})
	if cfg.Debug {
		utils.Info("Running in debug mode")
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://plumyr.romain-guillemot.dev",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowCredentials: true,
	}))

	database, err := db.Connect(cfg)
	if err != nil {
		utils.Fatal("MySQL connection failed", "error", err)
	}
	db.ApplyMigrations(database)

	kv, err := utils.NewRedis(cfg)
	if err != nil {
		utils.Fatal("Redis connection failed", "error", err)
	}

	// Pas de Fatal ici : sans SMTP le serveur tourne, seul l'envoi de
	// mails de reset échouera.
	mailer := utils.NewMailer(cfg)
	if cfg.Debug {
		if err := mailer.Ping(); err != nil {
			utils.Warn("Mailer unreachable", "err", err)
		}
	}
	defer utils.HandlePanic(mailer, cfg.ErrorReportEmail)

	users := dbTools.NewUserStore(database)
	posts := dbTools.NewPostStore(database)
	sessions := utils.NewSessionManager(cfg.JWTSecret, kv)
	reset := utils.NewResetTokenService(cfg.JWTSecret, cfg.ResetTokenTTL)

	authH := auth.NewHandler(users, sessions, reset, mailer, kv, cfg.AppURL, cfg.Debug)
	postH := handlers.NewPostHandler(posts, users)
	accountH := handlers.NewAccountHandler(users, cfg.StaticDir)

	// Avatars générés + sentinel default.jpg
	app.Static("/static/profile", cfg.StaticDir)

	api.SetupRoutes(app, sessions, authH, postH, accountH)

	utils.Fatal("Server stopped", "error", app.Listen(":"+cfg.Port))
}
