package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Geo      GeoConfig      `mapstructure:"geo" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the MongoDB connection settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// GeoConfig contains the settings for the zipcode lookup and the reference
// point used when deriving an item's direction.
type GeoConfig struct {
	ZipAPIBaseURL string  `mapstructure:"zip_api_base_url" validate:"required,url"`
	NYLatitude    float64 `mapstructure:"ny_latitude"`
	NYLongitude   float64 `mapstructure:"ny_longitude"`
}
