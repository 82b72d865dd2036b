package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Storage  StorageConfig
	Telegram TelegramConfig
	Reminder ReminderConfig
	Mail     MailConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	FrontendURL string   // used to build password reset links
	CORSOrigins []string // comma separated in CORS_ORIGINS
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// read pool used by the list and reminder queries
	MaxOpenConns int
	MaxIdleConns int
}

// NATSConfig for the activity event bus. Empty URL disables it.
type NATSConfig struct {
	URL string
}

// RedisConfig for the priority cache and the reminder lock. Empty URL disables it.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type StorageConfig struct {
	Type          string // local, s3
	BasePath      string // local: ./uploads
	BaseURL       string // local: http://localhost:8080/uploads
	MaxAvatarSize int64  // bytes
	S3            S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

type TelegramConfig struct {
	BotToken    string
	PollUpdates bool // answer /start with the chat id
	Timeout     time.Duration
}

type ReminderConfig struct {
	Enabled     bool
	Interval    time.Duration
	SendTimeout time.Duration
	LockTTL     time.Duration
	Timezone    string
}

type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	ResetTokenTTL time.Duration
}

func LoadConfig() (*Config, error) {
	// .env is optional, plain environment variables also work
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Todolist API"),
			Port:        getEnv("APP_PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			FrontendURL: strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			DBName:       getEnv("DB_NAME", "todolist"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			TTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Storage: StorageConfig{
			Type:          getEnv("STORAGE_TYPE", "local"),
			BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
			BaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
			MaxAvatarSize: int64(getEnvInt("STORAGE_MAX_AVATAR_SIZE", 2*1024*1024)),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "todolist"),
				UseSSL:    getEnvBool("S3_USE_SSL", false),
				Region:    getEnv("S3_REGION", "us-east-1"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollUpdates: getEnvBool("TELEGRAM_POLL_UPDATES", false),
			Timeout:     getEnvDuration("TELEGRAM_HTTP_TIMEOUT", 10*time.Second),
		},
		Reminder: ReminderConfig{
			Enabled:     getEnvBool("REMINDER_ENABLED", true),
			Interval:    getEnvDuration("REMINDER_INTERVAL", time.Minute),
			SendTimeout: getEnvDuration("REMINDER_SEND_TIMEOUT", 10*time.Second),
			LockTTL:     getEnvDuration("REMINDER_LOCK_TTL", 0),
			Timezone:    getEnv("REMINDER_TIMEZONE", "UTC"),
		},
		Mail: MailConfig{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvInt("SMTP_PORT", 587),
			Username:      getEnv("SMTP_USER", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			From:          getEnv("SMTP_FROM", "no-reply@todolist.local"),
			ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvDuration accepts Go durations ("90s", "1m") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
