package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Host     string
	Port     string
	LogLevel string
	LogJSON  bool
	LogFile  string

	Mongo MongoConfig
	Redis RedisConfig
	JWT   JWTConfig
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
}

// Load reads configuration from the environment. Every knob has a
// default except the Mongo URI and the JWT secrets, which the caller
// must verify before serving traffic.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "staffdesk")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_ACCESS_SECRET", "")
	v.SetDefault("JWT_REFRESH_SECRET", "")

	return &Config{
		Host:     v.GetString("HOST"),
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		LogJSON:  v.GetBool("LOG_JSON"),
		LogFile:  v.GetString("LOG_FILE"),
		Mongo: MongoConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
		},
	}
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
