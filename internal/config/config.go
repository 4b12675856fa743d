package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    `yaml:"storage"`
	RedisAddr  string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Booking    `yaml:"booking"`
	Telegram   `yaml:"telegram"`
	HTTPServer `yaml:"http_server"`
}

type Storage struct {
	// Kind is either "memory" (mock store) or "postgres".
	Kind string `yaml:"kind" env:"STORAGE_KIND" env-default:"memory"`
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:""`
}

type Booking struct {
	HorizonDays           int `yaml:"horizon_days" env-default:"14"`
	SlotStepMinutes       int `yaml:"slot_step_minutes" env-default:"30"`
	OnlineDiscountPercent int `yaml:"online_discount_percent" env-default:"5"`
}

type Telegram struct {
	Token  string `yaml:"token" env:"TELEGRAM_TOKEN" env-default:""`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID" env-default:"0"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}
