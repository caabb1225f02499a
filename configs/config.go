package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"skinlog-bot/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Row store backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Postgres `mapstructure:"postgres"`
	Line     `mapstructure:"line"`
	Sheets   `mapstructure:"sheets"`
	RowStore `mapstructure:"row_store"`
	Session  `mapstructure:"session"`
	Cache    `mapstructure:"cache"`
	Bot      `mapstructure:"bot"`
	Webhook  `mapstructure:"webhook"`
	Log      `mapstructure:"log"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port" validate:"required"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret" validate:"required"`
	ChannelToken  string `mapstructure:"channel_token" validate:"required"`
}

// Sheets struct - spreadsheet ids, A1 ranges and service account credentials
type Sheets struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	LogSheetID      string `mapstructure:"log_sheet_id" validate:"required"`
	NamesSheetID    string `mapstructure:"names_sheet_id" validate:"required"`
	LogRange        string `mapstructure:"log_range" validate:"required"`
	NamesRange      string `mapstructure:"names_range" validate:"required"`
}

// RowStore struct
type RowStore struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=sheets postgres"`
}

// Session struct - idle timeout in minutes
type Session struct {
	Timeout int `mapstructure:"timeout" validate:"gte=0"`
}

// Cache struct - names TTL in minutes
type Cache struct {
	NamesTTL int `mapstructure:"names_ttl" validate:"gte=0"`
}

// Bot struct
type Bot struct {
	PageSize            int      `mapstructure:"page_size" validate:"gte=0,lte=10"`
	Accounts            []string `mapstructure:"accounts" validate:"min=1,dive,required"`
	ResetOnWriteFailure bool     `mapstructure:"reset_on_write_failure"`
	RecentLimit         int      `mapstructure:"recent_limit" validate:"gte=0,lte=5"`
	Timezone            string   `mapstructure:"timezone"`
}

// Webhook struct - dedupe TTL in seconds
type Webhook struct {
	DedupeTTL int `mapstructure:"dedupe_ttl" validate:"gte=0"`
}

// Log struct
type Log struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SessionTimeout returns the idle timeout, zero meaning the default
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.Timeout) * time.Minute
}

// NamesTTL returns the names cache TTL, zero meaning the default
func (c *Config) NamesTTL() time.Duration {
	return time.Duration(c.Cache.NamesTTL) * time.Minute
}

// DedupeTTL returns how long webhook event ids are remembered, zero meaning the default
func (c *Config) DedupeTTL() time.Duration {
	return time.Duration(c.Webhook.DedupeTTL) * time.Second
}

// Validate checks required settings, failing fast on a bot that could not run
func (c *Config) Validate() error {
	if err := validator.New().ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.RowStore.Backend {
	case BackendSheets:
		if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
			return errors.New("invalid config: sheets backend needs sheets.credentials_file or sheets.credentials_json")
		}
	case BackendPostgres:
		if c.Postgres.Host == "" || c.Postgres.DbName == "" {
			return errors.New("invalid config: postgres backend needs postgres.host and postgres.database")
		}
	}
	return nil
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Failed to load .env: ", err)
	}

	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(env)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	config = Config{}
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}

func setDefaults(env string) {
	if env != "" {
		viper.SetDefault("app.env", env)
	}
	viper.SetDefault("app.port", "9089")
	viper.SetDefault("row_store.backend", BackendSheets)
	viper.SetDefault("sheets.log_range", "Log!A:F")
	viper.SetDefault("sheets.names_range", "Names!A:B")
	viper.SetDefault("session.timeout", 60)
	viper.SetDefault("cache.names_ttl", 60)
	viper.SetDefault("bot.page_size", 5)
	viper.SetDefault("bot.reset_on_write_failure", true)
	viper.SetDefault("bot.recent_limit", 5)
	viper.SetDefault("bot.timezone", "Asia/Bangkok")
	viper.SetDefault("webhook.dedupe_ttl", 600)
	viper.SetDefault("log.level", "info")
}
