package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseDSN string // sqlite path (default) or postgres:// URL
	RedisURL    string // optional; empty disables the report cache
	DataDir     string // where fetched payload files are written/read

	CORSSuffix string // allowed browser origin suffix, e.g. ".skkmigas.go.id"

	EsdcBaseURL string // upstream API base, default https://esdc.skkmigas.go.id/
	EsdcUser    string
	EsdcPass    string

	APIKeyHash string // bcrypt hash checked against X-Api-Key; empty disables auth
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dsn := viper.GetString("DATABASE_DSN")
	if env == "test" && viper.GetString("DATABASE_DSN_TEST") != "" {
		dsn = viper.GetString("DATABASE_DSN_TEST")
	}
	if dsn == "" {
		dsn = "esdc.db"
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseDSN: dsn,
		RedisURL:    viper.GetString("REDIS_URL"),
		DataDir:     dataDir,
		CORSSuffix:  viper.GetString("CORS_SUFFIX"),
		EsdcBaseURL: viper.GetString("ESDC_URL"),
		EsdcUser:    viper.GetString("ESDC_USER"),
		EsdcPass:    viper.GetString("ESDC_PASS"),
		APIKeyHash:  viper.GetString("API_KEY_HASH"),
	}, nil
}
