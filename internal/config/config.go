package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything api/main.go needs to wire the service.
// Values come from environment variables with sensible defaults; an empty
// DATABASE_URL selects the in-memory backend, an empty REDIS_ADDR disables
// the catalog cache.
type Config struct {
	Addr           string
	DatabaseURL    string
	RedisAddr      string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.AutomaticEnv()

	return Config{
		Addr:           viper.GetString("ADDR"),
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		CacheTTL:       time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
	}
}
