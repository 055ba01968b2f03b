package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	SMTP          SMTPConfig
	Keys          APIKeys
	Chatbot       ChatbotConfig
	Observability ObservabilityConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	ChatLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string // bcrypt hash
}

type ChatbotConfig struct {
	TypingDelay       time.Duration
	SessionTTL        time.Duration
	InteractionTopic  string
	SupportEmail      string
	EscalationDurable string
}

type ObservabilityConfig struct {
	OtelEnabled  bool
	OtelEndpoint string
	ServiceName  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			ChatLogFilePath:    getEnv("CHAT_LOG_FILE_PATH", "chat.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Aurora Linen"),
		},
		Keys: APIKeys{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Chatbot: ChatbotConfig{
			TypingDelay:       getEnvAsDuration("CHATBOT_TYPING_DELAY", time.Second),
			SessionTTL:        getEnvAsDuration("CHATBOT_SESSION_TTL", time.Hour),
			InteractionTopic:  getEnv("CHATBOT_INTERACTION_TOPIC", "chatbot.interactions"),
			SupportEmail:      getEnv("SUPPORT_EMAIL", "hello@auroralinen.in"),
			EscalationDurable: getEnv("CHATBOT_ESCALATION_DURABLE", "support-escalation-worker"),
		},
		Observability: ObservabilityConfig{
			OtelEnabled:  getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "linen-chatbot-be"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("750ms", "2h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
