package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full process configuration. cmd/solver only ever reads
// Solver and Log; the rest exists for cmd/solver-server.
type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Solver   SolverConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
}

// SolverConfig governs the CP engine's default resource and strategy
// budget. SOLVER_MAX_MEMORY_MB / SOLVER_MAX_TIME_SECONDS are the two
// environment overrides named by the external-interface contract.
type SolverConfig struct {
	MaxMemoryMB                int
	MaxTimeSeconds             int
	DefaultStrategy            string
	EnableGracefulDegradation  bool
	EnableDecomposition        bool
	MaxConcurrentSubSolves     int
	ProposalTTL                time.Duration
	ExportDir                  string
	ExportSigningSecret        string
}

type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	Required   bool
	JWTSecret  string
	JWTExpiry  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Solver = SolverConfig{
		MaxMemoryMB:               v.GetInt("SOLVER_MAX_MEMORY_MB"),
		MaxTimeSeconds:            v.GetInt("SOLVER_MAX_TIME_SECONDS"),
		DefaultStrategy:           v.GetString("SOLVER_DEFAULT_STRATEGY"),
		EnableGracefulDegradation: v.GetBool("SOLVER_ENABLE_GRACEFUL_DEGRADATION"),
		EnableDecomposition:       v.GetBool("SOLVER_ENABLE_DECOMPOSITION"),
		MaxConcurrentSubSolves:    v.GetInt("SOLVER_MAX_CONCURRENT_SUBSOLVES"),
		ProposalTTL:               parseDuration(v.GetString("SOLVER_PROPOSAL_TTL"), 30*time.Minute),
		ExportDir:                 v.GetString("SOLVER_EXPORT_DIR"),
		ExportSigningSecret:       v.GetString("SOLVER_EXPORT_SIGNING_SECRET"),
	}

	cfg.Database = DatabaseConfig{
		Enabled:      v.GetBool("ENABLE_AUDIT_STORE"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Required:  v.GetBool("AUTH_REQUIRED"),
		JWTSecret: v.GetString("JWT_SECRET"),
		JWTExpiry: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/v1")

	v.SetDefault("SOLVER_MAX_MEMORY_MB", 2048)
	v.SetDefault("SOLVER_MAX_TIME_SECONDS", 60)
	v.SetDefault("SOLVER_DEFAULT_STRATEGY", "balanced")
	v.SetDefault("SOLVER_ENABLE_GRACEFUL_DEGRADATION", true)
	v.SetDefault("SOLVER_ENABLE_DECOMPOSITION", true)
	v.SetDefault("SOLVER_MAX_CONCURRENT_SUBSOLVES", 4)
	v.SetDefault("SOLVER_PROPOSAL_TTL", "30m")
	v.SetDefault("SOLVER_EXPORT_DIR", "./exports")
	v.SetDefault("SOLVER_EXPORT_SIGNING_SECRET", "")

	v.SetDefault("ENABLE_AUDIT_STORE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable_solver")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
