package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Rooms      Rooms  `yaml:"rooms"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Rooms holds the session lifecycle tuning knobs.
type Rooms struct {
	ReconnectWindow   time.Duration `yaml:"reconnect-window" env:"ROOMS_RECONNECT_WINDOW" env-default:"5m"`
	IncompleteTimeout time.Duration `yaml:"incomplete-timeout" env:"ROOMS_INCOMPLETE_TIMEOUT" env-default:"10m"`
	SweepInterval     time.Duration `yaml:"sweep-interval" env:"ROOMS_SWEEP_INTERVAL" env-default:"5m"`
	StaleThreshold    time.Duration `yaml:"stale-threshold" env:"ROOMS_STALE_THRESHOLD" env-default:"1h"`
	RestartDebounce   time.Duration `yaml:"restart-debounce" env:"ROOMS_RESTART_DEBOUNCE" env-default:"1s"`
	StrictMoves       bool          `yaml:"strict-moves" env:"ROOMS_STRICT_MOVES" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
