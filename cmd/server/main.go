package main

import (
	"log"
	"strconv"
	"time"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/config"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/database"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/handlers"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/middleware"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/services"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/telegram"
	"github.com/offdroid/spreebreak-2024ws-bot/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN not set")
	}
	if cfg.JudgeChatID == 0 {
		log.Fatal("JUDGE_CHAT_ID not set")
	}

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	client := telegram.NewClient(cfg.BotToken)
	gateway := telegram.NewGateway(client, cfg.JudgeChatID)
	media := telegram.NewMediaStore(client, cfg.MediaDir)

	rosterService := services.NewRosterService(db)
	topologyService := services.NewTopologyService(db, rosterService, gateway)
	submissionService := services.NewSubmissionService(db, rosterService, media, gateway)
	judgementService := services.NewJudgementService(db, gateway)
	scoringService := services.NewScoringService(db)
	infoService := services.NewInfoService(db)
	broadcastService := services.NewBroadcastService(rosterService, gateway, cfg.Maintainers)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.AdminUser, cfg.AdminPassHash)

	state := telegram.NewStateManager()
	handler := telegram.NewUpdateHandler(
		client, state,
		rosterService, topologyService, submissionService,
		judgementService, scoringService, infoService, broadcastService,
		hub, cfg.Maintainers, cfg.JudgeChatID,
	)

	authHandler := handlers.NewAuthHandler(authService)
	reportsHandler := handlers.NewReportsHandler(rosterService, scoringService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws/scoreboard", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		reports := api.Group("")
		reports.Use(middleware.JWTAuth(authService))
		{
			reports.GET("/leaderboard", reportsHandler.GetLeaderboard)
			reports.GET("/teams", reportsHandler.ListTeams)
			reports.GET("/submissions", reportsHandler.ListSubmissions)
			reports.GET("/judgements", reportsHandler.ListJudgements)
		}
	}

	if cfg.WebhookBaseURL != "" {
		webhook := telegram.NewWebhook(client, handler, cfg.WebhookSecret)
		if err := webhook.Register(cfg.WebhookBaseURL); err != nil {
			log.Fatalf("failed to register webhook: %v", err)
		}
		defer webhook.Unregister()
		r.POST("/webhook/telegram", webhook.Handle)
	} else {
		pollSec, _ := strconv.Atoi(cfg.PollInterval)
		if pollSec <= 0 {
			pollSec = 2
		}
		poller := telegram.NewPoller(client, handler, time.Duration(pollSec)*time.Second)
		poller.Start()
		defer poller.Stop()
	}

	if err := topologyService.Reconcile(); err != nil {
		log.Printf("initial forum reconciliation: %v", err)
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
