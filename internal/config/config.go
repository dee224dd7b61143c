package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	CorsConfig
	SessionConfig
	ServerConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
	GetLogLevel() string
	GetAPIBaseURL() string
	GetPageSize() int
	GetCollateLanguage() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Session
	Server
}

var dotEnvOnce sync.Once

// New returns the environment backed configuration. A .env file in the working
// directory is loaded once; variables already set in the environment win.
func New() Config {
	dotEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using system environment variables")
		}
	})
	return mainConfig{}
}
