package di

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/pinkcat015/todolist/application/serviceimpl"
	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/infrastructure/mail"
	"github.com/pinkcat015/todolist/infrastructure/messaging"
	natspkg "github.com/pinkcat015/todolist/infrastructure/nats"
	"github.com/pinkcat015/todolist/infrastructure/postgres"
	redispkg "github.com/pinkcat015/todolist/infrastructure/redis"
	"github.com/pinkcat015/todolist/infrastructure/storage"
	"github.com/pinkcat015/todolist/infrastructure/telegram"
	"github.com/pinkcat015/todolist/infrastructure/websocket"
	"github.com/pinkcat015/todolist/interfaces/api/handlers"
	"github.com/pinkcat015/todolist/pkg/config"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/scheduler"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB         // writes and ownership-checked reads
	SQLX           *sqlx.DB         // list query and reminder scan
	RedisClient    *redispkg.Client // optional: priority cache + tick lock
	NATSClient     *natspkg.Client  // optional: activity events
	Storage        ports.StoragePort
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository      repositories.UserRepository
	TodoRepository      repositories.TodoRepository
	TodoQueryRepository repositories.TodoQueryRepository
	TodoLogRepository   repositories.TodoLogRepository
	CategoryRepository  repositories.CategoryRepository
	PriorityRepository  repositories.PriorityRepository
	ReminderRepository  repositories.ReminderRepository

	// Services
	UserService     services.UserService
	TodoService     services.TodoService
	CategoryService services.CategoryService
	PriorityService services.PriorityService
	TodoLogService  services.TodoLogService
	ReminderService services.ReminderService

	// Messaging
	ActivityPublisher  ports.ActivityPublisherPort
	ActivitySubscriber ports.ActivitySubscriberPort
	ActivityHub        *websocket.ActivityHub

	// Notifications
	Notifier     ports.NotifierPort
	Mailer       ports.MailerPort
	LinkListener *telegram.LinkListener
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initNotifications(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

// DatabaseConfig converts the app config for the postgres package.
func DatabaseConfig(cfg *config.Config) postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
}

func (c *Container) initInfrastructure() error {
	dbConfig := DatabaseConfig(c.Config)

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	sqlxDB, err := postgres.NewSQLX(dbConfig)
	if err != nil {
		return err
	}
	c.SQLX = sqlxDB

	// Redis is optional, the app runs without cache and without the tick lock
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	c.initMessaging()

	if err := c.initStorage(); err != nil {
		return err
	}

	return nil
}

// initMessaging publishes activity over NATS when configured, in-process otherwise.
func (c *Container) initMessaging() {
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:  c.Config.NATS.URL,
			Name: c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed, using in-process activity bus", "error", err)
		} else {
			c.NATSClient = natsClient
			c.ActivityPublisher = natspkg.NewActivityPublisher(natsClient.Conn())
			c.ActivitySubscriber = natspkg.NewActivitySubscriber(natsClient.Conn())
		}
	}

	if c.ActivityPublisher == nil {
		bus := messaging.NewLocalBus()
		c.ActivityPublisher = bus
		c.ActivitySubscriber = bus
		logger.Info("In-process activity bus initialized")
	}

	c.ActivityHub = websocket.NewActivityHub(c.ActivitySubscriber)
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(S3Config(c.Config))
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage
		logger.Info("S3 Storage initialized",
			"endpoint", c.Config.Storage.S3.Endpoint,
			"bucket", c.Config.Storage.S3.Bucket,
		)

	default:
		localStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local Storage initialized", "path", c.Config.Storage.BasePath)
	}

	return nil
}

// S3Config converts the app config for the storage package.
func S3Config(cfg *config.Config) storage.S3StorageConfig {
	return storage.S3StorageConfig{
		Endpoint:  cfg.Storage.S3.Endpoint,
		AccessKey: cfg.Storage.S3.AccessKey,
		SecretKey: cfg.Storage.S3.SecretKey,
		Bucket:    cfg.Storage.S3.Bucket,
		UseSSL:    cfg.Storage.S3.UseSSL,
		Region:    cfg.Storage.S3.Region,
		PublicURL: cfg.Storage.S3.PublicURL,
	}
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TodoRepository = postgres.NewTodoRepository(c.DB)
	c.TodoQueryRepository = postgres.NewTodoQueryRepository(c.SQLX)
	c.TodoLogRepository = postgres.NewTodoLogRepository(c.DB)
	c.CategoryRepository = postgres.NewCategoryRepository(c.DB)
	c.PriorityRepository = postgres.NewPriorityRepository(c.DB)
	c.ReminderRepository = postgres.NewReminderRepository(c.SQLX)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initNotifications() error {
	if c.Config.Telegram.BotToken != "" {
		bot, err := telegram.NewBotAPI(c.Config.Telegram.BotToken, c.Config.Telegram.Timeout)
		if err != nil {
			logger.Warn("Telegram bot initialization failed, reminders disabled", "error", err)
			c.Notifier = telegram.NewTelegramNotifier(nil)
		} else {
			c.Notifier = telegram.NewTelegramNotifier(bot)
			logger.Info("Telegram notifier initialized", "bot", bot.Self.UserName)

			if c.Config.Telegram.PollUpdates {
				c.LinkListener = telegram.NewLinkListener(bot)
				c.LinkListener.Start()
			}
		}
	} else {
		c.Notifier = telegram.NewTelegramNotifier(nil)
		logger.Warn("TELEGRAM_BOT_TOKEN not set, reminders disabled")
	}

	if c.Config.Mail.Host != "" {
		c.Mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     c.Config.Mail.Host,
			Port:     c.Config.Mail.Port,
			Username: c.Config.Mail.Username,
			Password: c.Config.Mail.Password,
			From:     c.Config.Mail.From,
			AppName:  c.Config.App.Name,
		})
		logger.Info("SMTP mailer initialized", "host", c.Config.Mail.Host)
	} else {
		c.Mailer = mail.NewLogMailer()
		logger.Warn("SMTP_HOST not set, password reset links are only logged")
	}

	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Storage, c.Mailer, serviceimpl.UserServiceConfig{
		JWTSecret:     c.Config.JWT.Secret,
		TokenTTL:      c.Config.JWT.TTL,
		FrontendURL:   c.Config.App.FrontendURL,
		ResetTokenTTL: c.Config.Mail.ResetTokenTTL,
		MaxAvatarSize: c.Config.Storage.MaxAvatarSize,
	})

	// a nil *redispkg.Client must not end up inside the interface
	var cache ports.CachePort
	if c.RedisClient != nil {
		cache = c.RedisClient
	}
	c.PriorityService = serviceimpl.NewPriorityService(c.PriorityRepository, cache)
	logger.Info("Priority service initialized", "cache", cache != nil)

	c.CategoryService = serviceimpl.NewCategoryService(c.CategoryRepository)
	c.TodoLogService = serviceimpl.NewTodoLogService(c.TodoLogRepository, c.TodoRepository)
	c.TodoService = serviceimpl.NewTodoService(
		c.TodoRepository,
		c.TodoQueryRepository,
		c.TodoLogRepository,
		c.CategoryRepository,
		c.PriorityService,
		c.ActivityPublisher,
	)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if !c.Config.Reminder.Enabled {
		logger.Warn("Reminder scheduler disabled (REMINDER_ENABLED=false)")
		return nil
	}

	loc, err := time.LoadLocation(c.Config.Reminder.Timezone)
	if err != nil {
		logger.Warn("Unknown reminder timezone, using UTC", "timezone", c.Config.Reminder.Timezone, "error", err)
		loc = time.UTC
	}

	var locker ports.LockPort
	if c.RedisClient != nil {
		locker = c.RedisClient
	}

	reminder := serviceimpl.NewReminderService(
		c.ReminderRepository,
		c.Notifier,
		locker,
		c.ActivityPublisher,
		c.EventScheduler,
		serviceimpl.ReminderConfig{
			Interval:    c.Config.Reminder.Interval,
			SendTimeout: c.Config.Reminder.SendTimeout,
			LockTTL:     c.Config.Reminder.LockTTL,
			Location:    loc,
		},
	)
	c.ReminderService = reminder

	if err := reminder.RegisterReminderJob(); err != nil {
		return err
	}

	c.EventScheduler.Start()
	logger.Info("Event scheduler started")
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// waits for a running reminder tick
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.LinkListener != nil {
		c.LinkListener.Stop()
	}

	if c.ActivityHub != nil {
		c.ActivityHub.Close()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.SQLX != nil {
		if err := c.SQLX.Close(); err != nil {
			logger.Warn("Failed to close sqlx pool", "error", err)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:     c.UserService,
		TodoService:     c.TodoService,
		CategoryService: c.CategoryService,
		PriorityService: c.PriorityService,
		TodoLogService:  c.TodoLogService,
		AppName:         c.Config.App.Name,
		DB:              c.SQLX,
		Scheduler:       c.EventScheduler,
		ReminderJobID:   serviceimpl.ReminderJobID,
	}
}
