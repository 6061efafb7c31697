package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Mode selects the listing service backing: "local" serves from the
// in-process store, "remote" forwards every call to REMOTE_API_BASE_URL.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	Mode                string
	DatabaseURL         string // Postgres DSN; empty = in-memory SQLite (demo/tests)
	RedisURL            string // token store; empty = static verifier (dev)
	RemoteAPIBaseURL    string // remote mode target, e.g. https://api.resellution.app
	UploadBaseURL       string // photo upload collaborator
	FrontendURLEndsWith string
	DefaultCurrency     string
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
	mode := strings.ToLower(viper.GetString("MODE"))
	if mode != ModeRemote {
		mode = ModeLocal
	}
	currency := viper.GetString("DEFAULT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		Mode:                mode,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		RemoteAPIBaseURL:    viper.GetString("REMOTE_API_BASE_URL"),
		UploadBaseURL:       viper.GetString("UPLOAD_BASE_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DefaultCurrency:     currency,
	}, nil
}
