package config

import (
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver" env-default:"postgres"`
	Source string `yaml:"source" env:"DB_SOURCE" env-required:"true"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env-default:"15m"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// FillerConfig содержит настройки движка заполнения документов.
type FillerConfig struct {
	// PadDates управляет дополнением месяца/дня нулями при форматировании дат
	// (2025年03月07日 против 2025年3月7日). По умолчанию нули не добавляются.
	PadDates bool `yaml:"pad_dates" env-default:"false"`
	// MaxUploadSizeMB ограничивает размер загружаемого шаблона.
	MaxUploadSizeMB int64 `yaml:"max_upload_size_mb" env-default:"20"`
}

// WorkerConfig ограничивает поток запросов через /internal/worker.
type WorkerConfig struct {
	// RateLimitRPS - запросов в секунду на воркер-маршруты.
	RateLimitRPS int `yaml:"rate_limit_rps" env:"WORKER_RATE_LIMIT_RPS" env-default:"100"`
	// RateLimitBurst - допустимый кратковременный всплеск сверх RateLimitRPS.
	RateLimitBurst int `yaml:"rate_limit_burst" env:"WORKER_RATE_LIMIT_BURST" env-default:"200"`
}

type Config struct {
	IsDebug *bool `yaml:"is_debug" env-required:"true"`
	Listen  struct {
		Type   string `yaml:"type" env-default:"port"`
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"8080"`
	} `yaml:"listen"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
	Filler   FillerConfig   `yaml:"filler"`
	Worker   WorkerConfig   `yaml:"worker"`
}

var instance *Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		logger := logging.GetLogger()
		logger.Info("read application configuration")
		instance = &Config{}
		if err := cleanenv.ReadConfig("./cmd/config/config.yml", instance); err != nil {
			help, _ := cleanenv.GetDescription(instance, nil)
			logger.Info(help)
			logger.Fatal(err)
		}
	})

	return instance
}
