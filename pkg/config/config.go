package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Lock modes for concurrent requests against the same interview session
const (
	LockModeBlock = "block"
	LockModeFail  = "fail"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	NLP       NLPConfig
	Realtime  RealtimeConfig
	Interview InterviewConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool
	AutoMigrate bool
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration for transcript archives
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
	URLExpiry       time.Duration
}

// NLPConfig configures the remote embedding scorer and the FAQ chat fallback. An
// empty EmbeddingURL selects the in-process lexical scorer; an empty ChatURL
// disables generated FAQ answers.
type NLPConfig struct {
	EmbeddingURL   string
	EmbeddingModel string
	ChatURL        string
	ChatModel      string
	APIKey         string
	Timeout        time.Duration
}

// RealtimeConfig is read with the WS_ prefix
type RealtimeConfig struct {
	HeartbeatInterval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"30s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	PongTimeout       time.Duration `envconfig:"PONG_TIMEOUT" default:"60s"`
	SendBuffer        int           `envconfig:"SEND_BUFFER" default:"64"`
	MaxMessageBytes   int64         `envconfig:"MAX_MESSAGE_BYTES" default:"4096"`
}

// InterviewConfig is read with the INTERVIEW_ prefix
type InterviewConfig struct {
	QuestionsDir string        `envconfig:"QUESTIONS_DIR" default:"data"`
	SummaryTTL   time.Duration `envconfig:"SUMMARY_TTL" default:"1h"`
	LockMode     string        `envconfig:"LOCK_MODE" default:"block"`
	// completed sessions older than this are evicted from memory; zero keeps them
	Retention time.Duration `envconfig:"RETENTION" default:"24h"`
	// persisted sessions older than this are deleted from the database; zero keeps them
	PersistRetention time.Duration `envconfig:"PERSIST_RETENTION" default:"720h"`
	FAQFile          string        `envconfig:"FAQ_FILE" default:"data/faq.json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Enabled:     getEnvAsBool("DB_ENABLED", false),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "interview_assistant"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "interview-transcripts"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			URLExpiry:       getEnvAsDuration("STORAGE_URL_EXPIRY", "15m"),
		},
		NLP: NLPConfig{
			EmbeddingURL:   getEnv("NLP_EMBEDDING_URL", ""),
			EmbeddingModel: getEnv("NLP_EMBEDDING_MODEL", "text-embedding-3-small"),
			ChatURL:        getEnv("NLP_CHAT_URL", ""),
			ChatModel:      getEnv("NLP_CHAT_MODEL", "gpt-4o-mini"),
			APIKey:         getEnv("NLP_API_KEY", ""),
			Timeout:        getEnvAsDuration("NLP_TIMEOUT", "30s"),
		},
	}

	if err := envconfig.Process("WS", &config.Realtime); err != nil {
		return nil, fmt.Errorf("failed to load realtime config: %w", err)
	}
	if err := envconfig.Process("INTERVIEW", &config.Interview); err != nil {
		return nil, fmt.Errorf("failed to load interview config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Realtime.HeartbeatInterval <= 0 {
		return fmt.Errorf("WS_HEARTBEAT_INTERVAL must be positive")
	}
	if c.Realtime.PongTimeout <= 0 || c.Realtime.WriteTimeout <= 0 {
		return fmt.Errorf("WS_PONG_TIMEOUT and WS_WRITE_TIMEOUT must be positive")
	}
	if c.Realtime.SendBuffer < 1 {
		return fmt.Errorf("WS_SEND_BUFFER must be at least 1")
	}
	switch c.Interview.LockMode {
	case LockModeBlock, LockModeFail:
	default:
		return fmt.Errorf("INTERVIEW_LOCK_MODE must be %q or %q, got %q", LockModeBlock, LockModeFail, c.Interview.LockMode)
	}
	if c.Storage.Enabled && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET is required when storage is enabled")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
