package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config armazena todas as configurações do serviço HallPoint.
// Os campos são lidos das variáveis de ambiente (o .env é carregado antes, no main).
type Config struct {
	// Geral
	Port        string `env:"PORT" envDefault:"5000"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	DBTimeout      time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"false"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"./sql"`

	// Cache (Redis)
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Segurança (JWT em cookie)
	JWTSecretKey           string        `env:"JWT_ACCESS_SECRET,required"`
	TokenExpiry            time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	TokenRevocationEnabled bool          `env:"TOKEN_REVOCATION_ENABLED" envDefault:"true"`

	// Rate Limiting
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD" envDefault:"1m"`

	// CORS
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://hall-point.web.app,http://localhost:5173"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// Retorna erro se alguma variável obrigatória (DATABASE_URL, JWT_ACCESS_SECRET) estiver ausente.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro de configuração: %w", err)
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("erro de configuração: JWT_ACCESS_SECRET não pode ser vazio")
	}
	return cfg, nil
}

// IsProduction indica se o cookie de sessão deve ser Secure e SameSite=None.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
