package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Store       StoreConfig       `mapstructure:"store"`
	AI          AIConfig          `mapstructure:"ai"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds the table settings used when a request leaves them out
type GameConfig struct {
	DefaultPlayers  int  `mapstructure:"default_players"`
	CheckInvariants bool `mapstructure:"check_invariants"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	LogLevel   string           `mapstructure:"log_level"`
	LogFormat  string           `mapstructure:"log_format"`
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	MaxGames              int    `mapstructure:"max_games"`
	CleanupInterval       int    `mapstructure:"cleanup_interval"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// HTTPServerConfig holds the JSON API configuration
type HTTPServerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	// JWTSecret enables seat tokens when set
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  int    `mapstructure:"token_ttl"`
}

// StoreConfig holds the game log database settings
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AIConfig holds the agent settings
type AIConfig struct {
	Workers int          `mapstructure:"workers"`
	Weights WeightConfig `mapstructure:"weights"`
}

// WeightConfig gives the worth of a cube depending on where it is
type WeightConfig struct {
	Zone    float64 `mapstructure:"zone"`
	Tile    float64 `mapstructure:"tile"`
	Active  float64 `mapstructure:"active"`
	Passive float64 `mapstructure:"passive"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
}

// CleanupEvery returns the game cleanup period, zero when disabled
func (c GRPCServerConfig) CleanupEvery() time.Duration {
	return time.Duration(c.CleanupInterval) * time.Second
}

// Timeout returns the request timeout of the HTTP API
func (c HTTPServerConfig) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// TTL returns the lifetime of seat tokens, zero for tokens that never expire
func (c HTTPServerConfig) TTL() time.Duration {
	return time.Duration(c.TokenTTL) * time.Minute
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.default_players", 3)
	v.SetDefault("game.check_invariants", false)

	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")

	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.max_games", 100)
	v.SetDefault("server.grpc_server.cleanup_interval", 300)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)

	v.SetDefault("server.http_server.enabled", true)
	v.SetDefault("server.http_server.host", "0.0.0.0")
	v.SetDefault("server.http_server.port", 8080)
	v.SetDefault("server.http_server.request_timeout", 30)
	v.SetDefault("server.http_server.jwt_secret", "")
	v.SetDefault("server.http_server.token_ttl", 24*60)

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", "data/quebec.db")

	v.SetDefault("ai.workers", 0)
	v.SetDefault("ai.weights.zone", 2.0)
	v.SetDefault("ai.weights.tile", 2.0)
	v.SetDefault("ai.weights.active", 1.0)
	v.SetDefault("ai.weights.passive", 0.5)

	v.SetDefault("development.verbose_logging", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/quebec")
	}

	// QUEBEC_SERVER_GRPC_SERVER_PORT overrides server.grpc_server.port
	v.SetEnvPrefix("QUEBEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file means defaults. Only a broken default file is an error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

func GetString(key string) string {
	return v.GetString(key)
}

func GetInt(key string) int {
	return v.GetInt(key)
}

func GetBool(key string) bool {
	return v.GetBool(key)
}

func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig reloads the config when its file changes. A reloaded config
// that does not validate is dropped and reported through onError.
func WatchConfig(onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.DefaultPlayers < core.MinPlayers || c.Game.DefaultPlayers > core.MaxPlayers {
		return fmt.Errorf("game.default_players must be between %d and %d", core.MinPlayers, core.MaxPlayers)
	}

	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json")
	}
	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.MaxGames < 0 {
		return fmt.Errorf("server.grpc_server.max_games must be non-negative")
	}
	if c.Server.GRPCServer.CleanupInterval < 0 {
		return fmt.Errorf("server.grpc_server.cleanup_interval must be non-negative")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}

	if c.Server.HTTPServer.Enabled {
		if c.Server.HTTPServer.Port <= 0 || c.Server.HTTPServer.Port > 65535 {
			return fmt.Errorf("server.http_server.port must be between 1 and 65535")
		}
		if c.Server.HTTPServer.Port == c.Server.GRPCServer.Port && c.Server.HTTPServer.Host == c.Server.GRPCServer.Host {
			return fmt.Errorf("server.http_server.port must differ from server.grpc_server.port")
		}
	}
	if c.Server.HTTPServer.RequestTimeout <= 0 {
		return fmt.Errorf("server.http_server.request_timeout must be positive")
	}
	if c.Server.HTTPServer.TokenTTL < 0 {
		return fmt.Errorf("server.http_server.token_ttl must be non-negative")
	}
	if secret := c.Server.HTTPServer.JWTSecret; secret != "" && len(secret) < 16 {
		return fmt.Errorf("server.http_server.jwt_secret must be at least 16 characters")
	}

	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when the store is enabled")
	}

	if c.AI.Workers < 0 {
		return fmt.Errorf("ai.workers must be non-negative")
	}
	w := c.AI.Weights
	for name, value := range map[string]float64{"zone": w.Zone, "tile": w.Tile, "active": w.Active, "passive": w.Passive} {
		if value < 0 {
			return fmt.Errorf("ai.weights.%s must be non-negative", name)
		}
	}

	return nil
}
