package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database DatabaseConfig  `mapstructure:"database"`
	Redis    RedisConfig     `mapstructure:"redis"`
	JWT      JWTConfig       `mapstructure:"jwt"`
	Admin    AdminSeedConfig `mapstructure:"admin"`
	Platform PlatformConfig  `mapstructure:"platform"`
	Search   SearchConfig    `mapstructure:"search"`
	Metrics  MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mysql, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // hours
}

type AdminSeedConfig struct {
	DefaultUsername string `mapstructure:"defaultUsername"`
	DefaultPassword string `mapstructure:"defaultPassword"`
}

// PlatformConfig points at the remote platform REST API.
type PlatformConfig struct {
	BaseURL        string `mapstructure:"baseUrl"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	EditorAPIKey   string `mapstructure:"editorApiKey"`
}

func (p PlatformConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type SearchConfig struct {
	DebounceMs int `mapstructure:"debounceMs"`
	PageSize   int `mapstructure:"pageSize"`
}

func (s SearchConfig) Debounce() time.Duration {
	if s.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(s.DebounceMs) * time.Millisecond
}

type MetricsConfig struct {
	CacheTTLSeconds int `mapstructure:"cacheTtlSeconds"`
}

func (m MetricsConfig) CacheTTL() time.Duration {
	if m.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(m.CacheTTLSeconds) * time.Second
}

var GlobalConfig *Config

func LoadConfig(path string) {
	// .env is optional; values there only feed the env overrides below.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("search.debounceMs", 500)
	viper.SetDefault("search.pageSize", 20)
	viper.SetDefault("metrics.cacheTtlSeconds", 60)
	viper.SetDefault("platform.timeoutSeconds", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	GlobalConfig = &cfg
}
