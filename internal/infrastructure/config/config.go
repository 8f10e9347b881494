package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "default-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Log    LogConfig
	Static StaticConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// MongoConfig is everything the data access layer needs to reach its
// collection. An empty Collection means the entity's own collection name.
type MongoConfig struct {
	URL            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StaticConfig points at the directory holding js/ and css/ assets.
type StaticConfig struct {
	Dir string
}

// Load reads configuration. Priority (highest to lowest):
// 1. Environment variables with ADDRESS_ prefix (e.g. ADDRESS_MONGO_URL)
// 2. Legacy variables MONGOHQ_URL, MONGOHQ_DB, PORT, JWT_SECRET
// 3. config.toml
// 4. Built-in defaults
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("error loading .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/simpleaddress")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("ADDRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by earlier deployments of the address site.
	_ = v.BindEnv("mongo.url", "ADDRESS_MONGO_URL", "MONGOHQ_URL")
	_ = v.BindEnv("mongo.database", "ADDRESS_MONGO_DATABASE", "MONGOHQ_DB")
	_ = v.BindEnv("app.port", "ADDRESS_APP_PORT", "PORT")
	_ = v.BindEnv("jwt.secret", "ADDRESS_JWT_SECRET", "JWT_SECRET")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Mongo: MongoConfig{
			URL:            v.GetString("mongo.url"),
			Database:       v.GetString("mongo.database"),
			Collection:     v.GetString("mongo.collection"),
			ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Static: StaticConfig{
			Dir: v.GetString("static.dir"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "simpleaddress")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")

	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "simpleaddress")
	v.SetDefault("mongo.connect_timeout", 10*time.Second)

	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("static.dir", "static")
}

// Validate checks the configuration for values the server cannot run without.
func (c *Config) Validate() error {
	if c.Mongo.URL == "" {
		return errors.New("mongo url is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo database name is required")
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("mongo connect timeout must be positive, got %s", c.Mongo.ConnectTimeout)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("jwt expiration must be positive, got %s", c.JWT.Expiration)
	}
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		return errors.New("jwt secret must be set in production")
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.App.Port
}
