package bootstrap

import (
	"context"

	"impes-be/internal/config"
	"impes-be/internal/controller"
	"impes-be/internal/entity"
	"impes-be/internal/handler"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/mailer"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/scheduler"
	"impes-be/internal/service"
	"impes-be/internal/websocket"
	"impes-be/pkg/events"
	pktNats "impes-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	PaymentRequestController    controller.IPaymentRequestController
	ApprovalLevelController     controller.IApprovalLevelController
	PaymentStatusController     controller.IPaymentStatusController
	ProjectAssignmentController controller.IProjectAssignmentController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
	NotificationService *service.NotificationService

	// Background jobs (started by main)
	Registry      service.IWorkflowRegistry
	RegistryAudit *scheduler.RegistryAudit

	closers []func()
}

// eventBus picks NATS when configured and reachable, otherwise the
// in-process bus.
func eventBus(cfg *config.Config, log logger.ILogger) (events.Publisher, events.Subscriber, []func()) {
	if cfg.App.EventBus == "nats" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, log)
		if err == nil {
			sub, subErr := pktNats.NewSubscriber(cfg.App.NatsURL, log)
			if subErr == nil {
				log.Info("EVENTS", "Using NATS JetStream event bus", map[string]interface{}{"url": cfg.App.NatsURL})
				return pub, sub, []func(){sub.Close, pub.Close}
			}
			pub.Close()
			err = subErr
		}
		log.Warn("EVENTS", "NATS unavailable, falling back to in-process bus", map[string]interface{}{"error": err})
	}

	bus := events.NewLocalBus(log)
	return bus, bus, []func(){func() { _ = bus.Close() }}
}

func redisClient(cfg *config.Config, log logger.ILogger) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, cross-instance fan-out disabled", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	verifier := serverutils.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	auth := verifier.Middleware()

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	}

	// 2. Infrastructure
	publisher, subscriber, closers := eventBus(cfg, sysLogger)
	rdb := redisClient(cfg, sysLogger)
	if rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
	}

	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 3. Services
	registry := service.NewWorkflowRegistry(uowFactory, memory.NewWorkflowTableCache(cfg.Workflow.RegistryCacheTTL), rdb, sysLogger)
	eventPublisher := service.NewPaymentEventPublisher(publisher, sysLogger)

	levelService := service.NewApprovalLevelService(uowFactory, registry, sysLogger)
	statusService := service.NewPaymentStatusService(uowFactory, registry, sysLogger)
	requestService := service.NewPaymentRequestService(uowFactory, registry, eventPublisher, entity.Privilege(cfg.Workflow.GlobalReadPrivilege), sysLogger)
	approvalService := service.NewApprovalService(uowFactory, registry, eventPublisher, sysLogger)
	historyService := service.NewApprovalHistoryService(uowFactory)
	settlementService := service.NewSettlementService(uowFactory, registry, eventPublisher, sysLogger)

	notifService := service.NewNotificationService(uowFactory, subscriber, wsHub, emailService, wsLogger)

	// 4. Controllers
	return &Container{
		Logger: sysLogger,

		PaymentRequestController:    controller.NewPaymentRequestController(requestService, approvalService, historyService, settlementService, auth),
		ApprovalLevelController:     controller.NewApprovalLevelController(levelService, auth),
		PaymentStatusController:     controller.NewPaymentStatusController(statusService, auth),
		ProjectAssignmentController: controller.NewProjectAssignmentController(requestService, auth),

		NotificationHandler: handler.NewNotificationHandler(wsHub, verifier, wsLogger),
		WebSocketHub:        wsHub,
		NotificationService: notifService,

		Registry:      registry,
		RegistryAudit: scheduler.NewRegistryAudit(registry, cfg.Workflow.RegistryAuditCron, sysLogger),

		closers: closers,
	}
}

// Start launches the hub, the notification consumer, registry invalidation
// and the audit job. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	go c.Registry.Listen(ctx)

	if err := c.NotificationService.Start(ctx); err != nil {
		return err
	}
	if err := c.RegistryAudit.Start(); err != nil {
		return err
	}
	c.RegistryAudit.Run(ctx)
	return nil
}

func (c *Container) Close() {
	c.RegistryAudit.Stop()
	for _, closeFn := range c.closers {
		closeFn()
	}
}
