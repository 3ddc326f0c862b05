package app

import (
	"time"

	"github.com/reelstack/dvdrental-backend/internal/platform/envutil"
)

type Config struct {
	HTTPAddr       string
	LogMode        string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	SweepInterval  time.Duration
	RedisAddr      string
	RedisChannel   string
	CORSConfigPath string
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:       envutil.Str("HTTP_ADDR", ":8080"),
		LogMode:        envutil.Str("LOG_MODE", "development"),
		JWTSecretKey:   envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.Dur("ACCESS_TOKEN_TTL", time.Hour),
		SweepInterval:  envutil.Dur("SWEEP_INTERVAL", 5*time.Minute),
		RedisAddr:      envutil.Str("REDIS_ADDR", ""),
		RedisChannel:   envutil.Str("REDIS_AVAILABILITY_CHANNEL", "dvd.available"),
		CORSConfigPath: envutil.Str("CORS_CONFIG_PATH", ""),
	}
}
