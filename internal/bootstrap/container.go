package bootstrap

import (
	"context"
	"log"
	"time"

	"linen-chatbot-be/internal/config"
	"linen-chatbot-be/internal/controller"
	"linen-chatbot-be/internal/handler"
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/mailer"
	"linen-chatbot-be/internal/pkg/metrics"
	"linen-chatbot-be/internal/repository/cache"
	"linen-chatbot-be/internal/repository/contract"
	"linen-chatbot-be/internal/repository/implementation"
	"linen-chatbot-be/internal/repository/memory"
	"linen-chatbot-be/internal/service"
	"linen-chatbot-be/internal/websocket"
	"linen-chatbot-be/pkg/faq"
	pktNats "linen-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	AdminController   controller.IAdminController
	ChatHandler       *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	Registry     *prometheus.Registry
	WebSocketHub *websocket.Hub
	Logger       logger.ILogger

	closers []func()
}

// NewContainer wires the application. db may be nil; Redis and NATS are checked
// and switched off with a warning when unreachable.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	c := &Container{Registry: registry, Logger: sysLogger}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Printf("[WARN] SMTP_HOST not set, support escalation disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	var interactionRepo contract.ChatInteractionRepository
	var interactionPublisher service.IPublisherService
	if db != nil {
		interactionRepo = implementation.NewChatInteractionRepository(db)
		interactionPublisher = service.NewPublisherService(pubSub, cfg.Chatbot.InteractionTopic)
		c.ConsumerService = service.NewConsumerService(pubSub, cfg.Chatbot.InteractionTopic, interactionRepo, sysLogger)
	} else {
		log.Printf("[WARN] No database configured, interaction log disabled")
	}

	var popularity *cache.PopularityRepository
	if rdb := connectRedis(cfg.App.RedisURL); rdb != nil {
		popularity = cache.NewPopularityRepository(rdb)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// Bus escalations end in mail; no SMTP, no bus.
	var eventPublisher service.EventPublisher
	if emailService != nil {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.NotificationService = service.NewNotificationService(natsSub, emailService, cfg.Chatbot.SupportEmail, cfg.Chatbot.EscalationDurable, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Services
	engine := faq.Default()
	sessionRepo := memory.NewSessionRepository(cfg.Chatbot.SessionTTL)

	chatDeps := service.ChatbotDeps{
		Engine:      engine,
		Sessions:    sessionRepo,
		Publisher:   interactionPublisher,
		Metrics:     recorder,
		Logger:      chatLogger,
		TypingDelay: cfg.Chatbot.TypingDelay,
	}
	var popularityReader service.PopularityReader
	if popularity != nil {
		chatDeps.Popularity = popularity
		popularityReader = popularity
	}
	chatbotService := service.NewChatbotService(chatDeps)

	escalationService := service.NewEscalationService(service.EscalationDeps{
		Sessions:     sessionRepo,
		Publisher:    eventPublisher,
		Mailer:       emailService,
		SupportEmail: cfg.Chatbot.SupportEmail,
		Metrics:      recorder,
		Logger:       chatLogger,
	})

	adminService := service.NewAdminService(cfg.Keys, interactionRepo, popularityReader, engine.Corpus())

	// WebSocket Hub
	wsHub := websocket.NewHub(chatLogger)
	go wsHub.Run()
	c.WebSocketHub = wsHub

	// 5. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, escalationService)
	c.AdminController = controller.NewAdminController(adminService, cfg.Keys.JWTSecret)
	c.ChatHandler = handler.NewChatHandler(chatbotService, wsHub, chatLogger)

	return c
}

// Start runs the background workers that have their infrastructure available.
func (c *Container) Start(ctx context.Context) {
	if c.ConsumerService != nil {
		if err := c.ConsumerService.Consume(ctx); err != nil {
			log.Printf("[WARN] Interaction consumer not started: %v", err)
		}
	}
	if c.NotificationService != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			log.Printf("[WARN] Escalation worker not started: %v", err)
		}
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, FAQ popularity disabled: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
