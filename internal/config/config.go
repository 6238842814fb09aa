package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var errMissingSigningKey = errors.New("api.jwt_signing_key is required")

type AppConfig struct {
	API         *APIConfig         `mapstructure:"api"`
	Gin         *GinConfig         `mapstructure:"gin"`
	Remote      *RemoteConfig      `mapstructure:"remote"`
	Credentials *CredentialsConfig `mapstructure:"credentials"`
	Postgres    *PostgresConfig    `mapstructure:"postgres"`
	Gold        *GoldConfig        `mapstructure:"gold"`
	Log         *LogConfig         `mapstructure:"log"`
}

type APIConfig struct {
	Port               string   `mapstructure:"port"`
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// RemoteConfig points at the system of record the storefront talks to.
type RemoteConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	CallTimeout    time.Duration `mapstructure:"call_timeout"`
}

type CredentialsConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type GoldConfig struct {
	DefaultDays int `mapstructure:"default_days"`
	Karat       int `mapstructure:"karat"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.allowed_cors_domains", []string{})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("remote.base_url", "http://10.0.2.2:8000/")
	v.SetDefault("remote.connect_timeout", 15*time.Second)
	v.SetDefault("remote.call_timeout", 45*time.Second)
	v.SetDefault("credentials.driver", DriverSQLite)
	v.SetDefault("credentials.dsn", "")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("gold.default_days", 30)
	v.SetDefault("gold.karat", 24)
	v.SetDefault("log.level", "info")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path, with APP_* environment variables taking precedence.
func Load(path string) (*AppConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig() -> %w", err)
	}

	return unmarshal(v)
}

// Watch reloads the file at path on every change and hands the new log level to onLevel.
func Watch(path string, onLevel func(level string)) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onLevel(v.GetString("log.level"))
	})
	v.WatchConfig()
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal() -> %w", err)
	}

	if conf.API.JWTSigningKey == "" {
		return nil, errMissingSigningKey
	}
	if conf.Credentials.Driver != DriverPostgres && conf.Credentials.Driver != DriverSQLite {
		return nil, fmt.Errorf("unknown credentials.driver %q", conf.Credentials.Driver)
	}

	return conf, nil
}
