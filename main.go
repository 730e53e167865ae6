package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"MediConsult/auth"
	"MediConsult/cache"
	"MediConsult/config"
	"MediConsult/controllers"
	"MediConsult/db"
	"MediConsult/jobs"
	"MediConsult/mailer"
	"MediConsult/migrations"
	"MediConsult/routes"
	"MediConsult/services"
)

var (
	startServer = func(r *gin.Engine, addr string) error { return r.Run(addr) }
	isTest      = false
)

func main() {
	run()
}

func run() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager setup failed")
	}

	if !isTest {
		if err := db.Connect(cfg.MongoURI, cfg.DBName); err != nil {
			log.Fatal().Err(err).Msg("could not reach mongo")
		}
		defer func() {
			if err := db.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := db.EnsureIndexes(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("index setup failed")
		}
		cache.Init(cfg.RedisURI)
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("could not create upload directory")
		}
		if cfg.RunMigrations {
			migrations.BackfillRatingSummary()
			migrations.NormalizeAvailability()
		}
	}

	mailer.Init(cfg)
	services.Init(cfg, tokens)
	controllers.Init(cfg)

	guard := &auth.Guard{Tokens: tokens, LoadUser: services.FetchUserByID}
	r := setupRouter(cfg, guard)

	if !isTest {
		jobs.StartDailyScheduler()
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := startServer(r, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupRouter(cfg *config.Config, guard *auth.Guard) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.MaxMultipartMemory = 8 << 20
	r.Static("/uploads", cfg.UploadDir)

	routes.Routes(r, guard)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "route not found"})
	})
	return r
}
