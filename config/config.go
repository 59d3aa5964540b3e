package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Backends aceitos para o registro durável da sessão.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config armazena todas as configurações do cliente GoTour.
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// API remota
	APIBaseURL string
	APITimeout time.Duration

	// Sessão
	SessionBackend      string
	SessionDBPath       string // SQLite
	SessionKeyPrefix    string
	SessionSecret       string // vazio = registro em texto puro
	RejectExpiredTokens bool
	LandingPath         string
	LoginPath           string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration
	TourCacheTTL time.Duration

	// Rate Limiting das chamadas à API
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. API
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api/v1"),
		APITimeout: getDurationEnv("API_TIMEOUT_SEC", 15) * time.Second,

		// 3. Sessão
		SessionBackend:      strings.ToLower(getEnv("SESSION_BACKEND", BackendSQLite)),
		SessionDBPath:       getEnv("SESSION_DB_PATH", defaultSessionDBPath()),
		SessionKeyPrefix:    getEnv("SESSION_KEY_PREFIX", "gotour"),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		RejectExpiredTokens: getBoolEnv("REJECT_EXPIRED_TOKENS", false),
		LandingPath:         getEnv("LANDING_PATH", "/"),
		LoginPath:           getEnv("LOGIN_PATH", "/login"),

		// 4. Banco de Dados (PostgreSQL), só exigido pelo backend postgres
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 5. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		TourCacheTTL: getDurationEnv("TOUR_CACHE_TTL_SEC", 300) * time.Second,

		// 6. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	return cfg
}

// Validate confere as combinações que dependem do backend escolhido.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendSQLite:
		if c.SessionDBPath == "" {
			return fmt.Errorf("SESSION_DB_PATH é obrigatório para o backend %s", c.SessionBackend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR é obrigatório para o backend %s", c.SessionBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatório para o backend %s", c.SessionBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("SESSION_BACKEND desconhecido: '%s'", c.SessionBackend)
	}

	if !strings.HasPrefix(c.LandingPath, "/") || !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("LANDING_PATH e LOGIN_PATH devem começar com '/'")
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < 12 {
		return fmt.Errorf("SESSION_SECRET deve ter pelo menos 12 caracteres")
	}
	return nil
}

// defaultSessionDBPath fica no diretório de config do usuário, como o storage do navegador.
func defaultSessionDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".gotour", "session.db")
	}
	return filepath.Join(dir, "gotour", "session.db")
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv aceita os formatos de strconv.ParseBool.
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
