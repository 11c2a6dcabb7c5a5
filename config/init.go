package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Конечная структура конфигурации приложения.
type Config struct {
	Server struct {
		Address  string `mapstructure:"address"`   // 0.0.0.0
		HTTPPort string `mapstructure:"http_port"` // 8080
	} `mapstructure:"server"`

	Auth struct {
		Secret   string        `mapstructure:"secret"`    // ключ подписи токенов (HS256)
		TokenTTL time.Duration `mapstructure:"token_ttl"` // срок жизни токена
	} `mapstructure:"auth"`

	Mail struct {
		Enabled bool   `mapstructure:"enabled"` // false — письма только в лог
		Host    string `mapstructure:"host"`
		Port    string `mapstructure:"port"`
		From    string `mapstructure:"from"`
		BaseURL string `mapstructure:"base_url"` // адрес фронта для ссылок в письмах
	} `mapstructure:"mail"`

	Logging struct {
		Level  string `mapstructure:"level"`  // trace|debug|info|warning|error|fatal
		Format string `mapstructure:"format"` // text|json
		File   string `mapstructure:"file"`
	} `mapstructure:"logs"`

	Database struct {
		Driver string `mapstructure:"driver"` // "postgres" | "mysql" | "sqlite" | "" (in-memory)
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`
}

// Load читает конфиг из env/файла с дефолтами.
func Load() (*Config, error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("server.http_port", "8080")

	viper.SetDefault("auth.secret", "CHANGE_ME")
	viper.SetDefault("auth.token_ttl", 7*24*time.Hour)

	viper.SetDefault("mail.enabled", false)
	viper.SetDefault("mail.host", "")
	viper.SetDefault("mail.port", "25")
	viper.SetDefault("mail.from", "noreply@crewhub.local")
	viper.SetDefault("mail.base_url", "http://localhost:8080")

	viper.SetDefault("logs.level", "info")
	viper.SetDefault("logs.format", "text")
	viper.SetDefault("logs.file", "")

	viper.SetDefault("database.driver", "")
	viper.SetDefault("database.dsn", "")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "crewhub"))
		}
		viper.AddConfigPath("/etc/crewhub")
	}

	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Пустой или дефолтный ключ подписи — единственная по-настоящему
// фатальная мисконфигурация: с ним любой токен подделывается.
func validate(c *Config) error {
	if strings.TrimSpace(c.Auth.Secret) == "" || c.Auth.Secret == "CHANGE_ME" {
		return errors.New("auth.secret must be set (not empty and not CHANGE_ME)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address must not be empty")
	}
	if strings.TrimSpace(c.Server.HTTPPort) == "" {
		return errors.New("server.http_port must not be empty")
	}
	return nil
}
