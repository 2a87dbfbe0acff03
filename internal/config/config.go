package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	APIConfig
	SecurityConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// settings is the raw environment, parsed once by New.
type settings struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Bursary Portal"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Env     string `env:"ENV" envDefault:"DEV"`

	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	APIBaseURL string        `env:"BURSARY_API_URL" envDefault:"http://127.0.0.1:5000"`
	APITimeout time.Duration `env:"BURSARY_API_TIMEOUT" envDefault:"10s"`

	CookieSecret   string        `env:"COOKIE_SECRET"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	CookiePrefix   string        `env:"COOKIE_PREFIX" envDefault:"bursary_"`
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"cookie"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
}

type mainConfig struct {
	EnvVars
	Cors
	API
	Security
	Storage
}

// New loads an optional .env file and then reads the process environment.
func New() (Config, error) {
	_ = godotenv.Load() // a missing .env is fine outside development

	var s settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("[config New] parse environment: %w", err)
	}
	return fromSettings(s)
}

func fromSettings(s settings) (Config, error) {
	c := mainConfig{
		EnvVars:  EnvVars{s: s},
		Cors:     newCors(s.AllowedOrigins),
		API:      API{s: s},
		Security: Security{s: s},
		Storage:  Storage{s: s},
	}
	if err := c.Storage.validate(c.GetEnv()); err != nil {
		return nil, err
	}
	return c, nil
}
