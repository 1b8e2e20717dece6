package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"perps-arcade-backend/internal/affiliate"
	"perps-arcade-backend/internal/config"
	"perps-arcade-backend/internal/handlers"
	"perps-arcade-backend/internal/middleware"
	"perps-arcade-backend/internal/sentiment"
	"perps-arcade-backend/internal/services"
	"perps-arcade-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config: ", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	redis, err := services.NewRedisService(cfg)
	if err != nil {
		logger.Fatal("failed to connect to Redis: ", err)
	}

	claude := sentiment.NewClient(cfg)
	sentimentService := sentiment.NewService(redis, claude)
	affiliateService := affiliate.NewService(redis)

	feed := handlers.NewGameFeed()
	gameHandler := handlers.NewGameHandler(redis, feed, cfg.GameMode)
	sentimentHandler := handlers.NewSentimentHandler(sentimentService)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.WalletIdentity())

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/ws", feed.HandleWebSocket)

		sentimentRoutes := api.Group("/sentiment")
		sentimentRoutes.Use(middleware.RateLimit(redis, "sentiment", 10, 3, time.Minute))
		{
			sentimentRoutes.GET("/:symbol", sentimentHandler.GetSentiment)
			sentimentRoutes.GET("/realities/:symbol", sentimentHandler.GetRealities)
			sentimentRoutes.GET("/hashtags/:symbol", sentimentHandler.GetHashtags)
		}

		affiliateRoutes := api.Group("/affiliate")
		{
			affiliateRoutes.GET("/leaderboard", affiliateHandler.Leaderboard)

			throttled := affiliateRoutes.Group("")
			throttled.Use(middleware.RateLimit(redis, "affiliate", 20, 20, time.Minute))
			{
				throttled.POST("/register", affiliateHandler.Register)
				throttled.GET("/stats/:wallet", affiliateHandler.Stats)
				throttled.POST("/track-trade", affiliateHandler.TrackTrade)
			}
		}

		gameRoutes := api.Group("/games")
		gameRoutes.Use(middleware.RateLimit(redis, "games", 30, 30, time.Minute))
		{
			gameRoutes.GET("", gameHandler.ListGames)
			gameRoutes.POST("", gameHandler.CreateGame)
			gameRoutes.GET("/verify", gameHandler.VerifyGame)
			gameRoutes.GET("/balance", gameHandler.GetBalance)
			gameRoutes.POST("/:id/join", gameHandler.JoinGame)
			gameRoutes.POST("/:id/cancel", gameHandler.CancelGame)
		}
	}

	logger.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
		"mode": cfg.GameMode,
	}).Info("starting server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited: ", err)
	}
}
