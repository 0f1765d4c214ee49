// Package config reads service configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"

	appenv "github.com/vyrlabs/vyr/internal/env"
	"github.com/vyrlabs/vyr/internal/redis"
)

type Config struct {
	Port     string             `env:"PORT" envDefault:"8080"`
	Env      appenv.Environment `env:"ENV" envDefault:"development"`
	Database Database           `envPrefix:"DATABASE_"`
	Redis    redis.Config       `envPrefix:"REDIS_"`
	Auth     Auth               `envPrefix:"AUTH_"`
}

type Database struct {
	URL string `env:"URL,required"`
}

type Auth struct {
	// APIKeyPepper is appended to API keys before hashing.
	APIKeyPepper string `env:"API_KEY_PEPPER" envDefault:""`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
