package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	folderEnvVar   = "FOLDER"
	apiBaseURLVar  = "API_BASE_URL"
	logLevelVar    = "LOG_LEVEL"
	pageSizeVar    = "PAGE_SIZE"
	collateLangVar = "COLLATE_LANG"

	defaultPageSize = 10
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "PG Admin")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

// GetAPIBaseURL returns the backend root every API call is resolved against,
// e.g. "http://localhost:8080/api".
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080/api")
}

func (EnvVars) GetPageSize() int {
	return GetEnvInt(pageSizeVar, defaultPageSize)
}

// GetCollateLanguage is the BCP 47 tag used for locale aware sorting.
func (EnvVars) GetCollateLanguage() string {
	return GetEnv(collateLangVar, "en")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the positive integer held in envVar, or defaultValue when it
// is unset or not a positive integer.
func GetEnvInt(envVar string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(envVar))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
