package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values applied when the corresponding environment
// variable is unset. The database and log settings use the exact environment
// names the deployment manifests wire in: MONGODB_URI, MONGODB_DB_NAME,
// LOG_LEVEL.
const (
	DefaultPort          = 8000
	DefaultLogLevel      = "info"
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDBName   = "items_db"
	DefaultZipAPIBaseURL = "https://api.zippopotam.us/us"

	// Reference coordinates for direction calculation.
	DefaultNYLatitude  = 40.7128
	DefaultNYLongitude = -74.0060
)

// Load configuration from environment variables.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("database.uri", DefaultMongoURI)
	v.SetDefault("database.name", DefaultMongoDBName)
	v.SetDefault("geo.zip_api_base_url", DefaultZipAPIBaseURL)
	v.SetDefault("geo.ny_latitude", DefaultNYLatitude)
	v.SetDefault("geo.ny_longitude", DefaultNYLongitude)

	// Bind each key to its published environment variable. BindEnv never
	// fails for a non-empty key list, but the error is checked anyway to
	// satisfy the linter.
	bindings := map[string]string{
		"server.port":          "SERVER_PORT",
		"server.log_level":     "LOG_LEVEL",
		"database.uri":         "MONGODB_URI",
		"database.name":        "MONGODB_DB_NAME",
		"geo.zip_api_base_url": "ZIP_API_BASE_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	// Environment values arrive as strings; weak typing lets them decode into
	// the numeric fields.
	weaklyTyped := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(&cfg, weaklyTyped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
