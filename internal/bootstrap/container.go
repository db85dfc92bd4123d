package bootstrap

import (
	"context"
	"log"

	"ai-knowledgebase-be/internal/config"
	"ai-knowledgebase-be/internal/controller"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/internal/repository/memory"
	"ai-knowledgebase-be/internal/repository/unitofwork"
	"ai-knowledgebase-be/internal/service"
	"ai-knowledgebase-be/internal/websocket"
	"ai-knowledgebase-be/pkg/llm/factory"

	pktNats "ai-knowledgebase-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController  controller.IDocumentController
	PartitionController controller.IPartitionController
	AnalysisController  controller.IAnalysisController
	SettingsController  controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Sync
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory analysis session state
	sessionRepo := memory.NewSessionRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/sync.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.SummarizeTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.SummarizeTopic,
		uowFactory,
		llmProvider,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)
	partitionService := service.NewPartitionService(uowFactory)
	analysisService := service.NewAnalysisService(
		uowFactory,
		sessionRepo,
		llmProvider,
		cfg.Ai.MaxContextChars,
		sysLogger,
	)
	settingsService := service.NewSettingsService(uowFactory)

	// Sync worker: NATS -> WebSocket clients
	syncService := service.NewSyncService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go syncService.Start()
	}

	// 5. Controllers
	return &Container{
		DocumentController:  controller.NewDocumentController(documentService),
		PartitionController: controller.NewPartitionController(partitionService),
		AnalysisController:  controller.NewAnalysisController(analysisService),
		SettingsController:  controller.NewSettingsController(settingsService),
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
	}
}
