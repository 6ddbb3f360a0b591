package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string    `yaml:"log-level" env-default:"info"`
	HTTPPort          string    `yaml:"http-port" env-default:"9090"`
	SQLiteStoragePath string    `yaml:"sqlite-storage-path" env-default:"tictactoe.db"`
	Redis             Redis     `yaml:"redis"`
	SMTP              SMTP      `yaml:"smtp"`
	Scheduler         Scheduler `yaml:"scheduler"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type SMTP struct {
	Host     string `yaml:"host" env-default:""`
	Port     int    `yaml:"port" env-default:"587"`
	From     string `yaml:"from" env-default:""`
	Username string `yaml:"username" env-default:""`
	Password string `yaml:"password" env-default:""`
}

type Scheduler struct {
	ReminderInterval     time.Duration `yaml:"reminder-interval" env-default:"1h"`
	AverageMovesInterval time.Duration `yaml:"average-moves-interval" env-default:"1m"`
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
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
