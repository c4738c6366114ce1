package bootstrap

import (
	"context"
	"log"
	"time"

	"ops-collab-be/internal/config"
	"ops-collab-be/internal/controller"
	"ops-collab-be/internal/handler"
	"ops-collab-be/internal/pkg/logger"
	"ops-collab-be/internal/pkg/mailer"
	"ops-collab-be/internal/repository/memory"
	"ops-collab-be/internal/repository/unitofwork"
	"ops-collab-be/internal/service"
	"ops-collab-be/internal/websocket"
	"ops-collab-be/pkg/discord"

	pktNats "ops-collab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const discordDeliveryTopic = "discord_deliveries"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	FolderController       controller.IFolderController
	ReportController       controller.IReportController
	DraftController        controller.IDraftController
	MissionController      controller.IMissionController
	NotificationController controller.INotificationController
	AdminController        controller.IAdminController
	UploadController       controller.IUploadController

	// Background services (exposed for main.go to run)
	DiscordConsumerService service.IDiscordConsumerService
	Janitor                *cron.Cron

	// WebSockets
	WsHandler    *handler.WsHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(client *mongo.Client, db *mongo.Database, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(client, db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. In-process delivery queue for Discord embeds
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(discordDeliveryTopic, pubSub)

	discordSender := discord.NewSender(cfg.Discord.WebhookURL, cfg.Discord.BotToken)
	discordConsumer := service.NewDiscordConsumerService(pubSub, discordDeliveryTopic, discordSender)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	// WebSocket hub with its own log file, notification noise stays out
	// of the main log.
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	roleCache := memory.NewRoleCache(5 * time.Minute)
	permissionService := service.NewPermissionService(uowFactory, roleCache)

	authService := service.NewAuthService(uowFactory, cfg.Discord, cfg.Auth, sysLogger)
	folderService := service.NewFolderService(uowFactory)
	reportService := service.NewReportService(uowFactory, natsPub, sysLogger)
	draftService := service.NewDraftService(uowFactory, reportService, sysLogger)
	missionService := service.NewMissionService(uowFactory, natsPub, sysLogger)
	uploadService := service.NewUploadService(cfg)
	adminService := service.NewAdminService(uowFactory, permissionService, natsPub, sysLogger)

	notifService := service.NewNotificationService(
		uowFactory,
		natsSub,
		wsHub,
		publisherService,
		emailService,
		cfg.App.ClientURL,
		wsLogger,
	)
	if natsSub != nil {
		go notifService.Start()
	}

	// 5. Daily janitor for abandoned drafts
	retention := time.Duration(cfg.Upload.DraftRetentionDay) * 24 * time.Hour
	janitor := cron.New()
	_, err = janitor.AddFunc("@daily", func() {
		purged, err := draftService.PurgeStale(context.Background(), retention)
		if err != nil {
			sysLogger.Error("Janitor", "Stale draft purge failed", map[string]interface{}{"error": err.Error()})
			return
		}
		if purged > 0 {
			sysLogger.Info("Janitor", "Purged stale drafts", map[string]interface{}{"count": purged})
		}
	})
	if err != nil {
		log.Printf("[WARN] Failed to schedule draft janitor: %v", err)
	}

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		FolderController:       controller.NewFolderController(folderService),
		ReportController:       controller.NewReportController(reportService),
		DraftController:        controller.NewDraftController(draftService),
		MissionController:      controller.NewMissionController(missionService),
		NotificationController: controller.NewNotificationController(notifService),
		AdminController:        controller.NewAdminController(adminService),
		UploadController:       controller.NewUploadController(uploadService),

		DiscordConsumerService: discordConsumer,
		Janitor:                janitor,

		WsHandler:    handler.NewWsHandler(wsHub, wsLogger),
		WebSocketHub: wsHub,
	}
}
