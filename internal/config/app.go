package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// DSN is accepted both by pgxpool and by the database/sql pgx driver.
func (config *DbServer) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

func (config *DbServer) GetConnectionStr() string {
	if config.MaxConns <= 0 {
		return config.DSN()
	}
	return fmt.Sprintf("%s pool_max_conns=%d", config.DSN(), config.MaxConns)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type CBRAPI struct {
	URL string `mapstructure:"url"`
}

type RateCache struct {
	Driver string `mapstructure:"driver"` // memory | redis
	// FetchTimeout bounds the synchronous fetch made on a cache miss.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type Redis struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type Scheduler struct {
	RateRefreshInterval   time.Duration `mapstructure:"rate_refresh_interval"`
	RecalculationInterval time.Duration `mapstructure:"recalculation_interval"`
	RefreshOnStart        bool          `mapstructure:"refresh_on_start"`
}

type Storage struct {
	Driver string `mapstructure:"driver"` // postgres | memory
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Session struct {
	CookieName string        `mapstructure:"cookie_name"`
	MaxAge     time.Duration `mapstructure:"max_age"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	CBRAPI     CBRAPI     `mapstructure:"cbr_api"`
	RateCache  RateCache  `mapstructure:"rate_cache"`
	Redis      Redis      `mapstructure:"redis"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Storage    Storage    `mapstructure:"storage"`
	Logging    Logging    `mapstructure:"logging"`
	Session    Session    `mapstructure:"session"`
}

func Init() (*AppConfig, error) {
	// .env is optional, environment variables may come from the container
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile("config.yaml")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("cbr_api.url", "https://www.cbr-xml-daily.ru/daily_json.js")
	v.SetDefault("rate_cache.driver", "memory")
	v.SetDefault("rate_cache.fetch_timeout", 5*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "parcels:")
	v.SetDefault("scheduler.rate_refresh_interval", 5*time.Minute)
	v.SetDefault("scheduler.recalculation_interval", time.Minute)
	v.SetDefault("scheduler.refresh_on_start", true)
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("logging.level", "info")
	v.SetDefault("session.cookie_name", "sessionid")
	v.SetDefault("session.max_age", 14*24*time.Hour)
}

func bindEnv(v *viper.Viper) {
	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("cbr_api.url", "CBR_API_URL")
	_ = v.BindEnv("rate_cache.driver", "RATE_CACHE_DRIVER")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("scheduler.rate_refresh_interval", "RATE_REFRESH_INTERVAL")
	_ = v.BindEnv("scheduler.recalculation_interval", "RECALCULATION_INTERVAL")
}

func (cfg *AppConfig) validate() error {
	switch cfg.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	switch cfg.RateCache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported rate cache driver %q", cfg.RateCache.Driver)
	}
	if strings.TrimSpace(cfg.CBRAPI.URL) == "" {
		return errors.New("cbr api url is required")
	}
	return nil
}
