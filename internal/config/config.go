package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AI       AIConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// AIConfig gates the talent-search feature. It is injected into the
// components that need it; nothing reads environment state at call time.
type AIConfig struct {
	APIKey            string
	EmbeddingModel    string
	GenerativeModel   string
	RequestTimeout    time.Duration
	MinSimilarity     float64
	DefaultLimit      int
	RefreshBatchSize  int
	RefreshBatchDelay time.Duration
}

// Configured reports whether the AI backends can be used at all.
func (c *AIConfig) Configured() bool {
	return c.APIKey != ""
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("AI_EMBEDDING_MODEL", "text-embedding-004")
	viper.SetDefault("AI_GENERATIVE_MODEL", "gemini-1.5-pro")
	viper.SetDefault("AI_REQUEST_TIMEOUT_SEC", 30)
	viper.SetDefault("AI_MIN_SIMILARITY", 0.3)
	viper.SetDefault("AI_DEFAULT_LIMIT", 50)
	viper.SetDefault("AI_REFRESH_BATCH_SIZE", 10)
	viper.SetDefault("AI_REFRESH_BATCH_DELAY_MS", 1000)

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		AI: AIConfig{
			APIKey:            viper.GetString("GEMINI_API_KEY"),
			EmbeddingModel:    viper.GetString("AI_EMBEDDING_MODEL"),
			GenerativeModel:   viper.GetString("AI_GENERATIVE_MODEL"),
			RequestTimeout:    time.Duration(viper.GetInt("AI_REQUEST_TIMEOUT_SEC")) * time.Second,
			MinSimilarity:     viper.GetFloat64("AI_MIN_SIMILARITY"),
			DefaultLimit:      viper.GetInt("AI_DEFAULT_LIMIT"),
			RefreshBatchSize:  viper.GetInt("AI_REFRESH_BATCH_SIZE"),
			RefreshBatchDelay: time.Duration(viper.GetInt("AI_REFRESH_BATCH_DELAY_MS")) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.AI.MinSimilarity < 0 || c.AI.MinSimilarity > 1 {
		return fmt.Errorf("AI min similarity must be between 0 and 1")
	}
	if c.AI.DefaultLimit < 1 || c.AI.DefaultLimit > 100 {
		return fmt.Errorf("AI default limit must be between 1 and 100")
	}
	// GEMINI_API_KEY stays optional: the service boots with talent search
	// disabled and reports that through the availability endpoint.
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
