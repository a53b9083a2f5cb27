package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	BoardSize       int  `env:"BOARD_SIZE" envDefault:"19"`
	DevEndpoints    bool `env:"DEV_ENDPOINTS" envDefault:"false"`
	BotThinkDelayMs int  `env:"BOT_THINK_DELAY_MS" envDefault:"1000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
