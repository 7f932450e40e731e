package bootstrap

import (
	"fmt"

	"github.com/spf13/viper"

	errs "goban/internal/errors"
)

type Config struct {
	ServerPort    string  `mapstructure:"SERVER_PORT"`
	RedisUrl      string  `mapstructure:"REDIS_URL"`
	MongoUri      string  `mapstructure:"MONGO_URI"`
	MongoDatabase string  `mapstructure:"MONGO_DATABASE"`
	BoardSize     int     `mapstructure:"BOARD_SIZE"`
	Komi          float64 `mapstructure:"KOMI"`
	IsLocalCors   bool    `mapstructure:"LOCAL_CORS"`
	LogDebug      bool    `mapstructure:"LOG_DEBUG"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "goban")
	v.SetDefault("BOARD_SIZE", 19)
	v.SetDefault("KOMI", 6.5)
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("LOG_DEBUG", false)
}

// Setup reads cfgPath (a .env file) over the defaults. Environment variables
// override both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < 1 || c.BoardSize > 19 {
		return fmt.Errorf("%w: %d", errs.ErrBadBoardSize, c.BoardSize)
	}
	return nil
}
