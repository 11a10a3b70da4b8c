package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type QuizConf struct {
	// QuestionsPath overrides the embedded default question bank.
	QuestionsPath      string        `env:"QUIZ_QUESTIONS_PATH"`
	WebsocketReadLimit int64         `env:"QUIZ_WS_READ_LIMIT" envDefault:"4096"`
	RateLimitWindow    time.Duration `env:"QUIZ_RATE_WINDOW" envDefault:"1s"`
	RateLimit          int           `env:"QUIZ_RATE_LIMIT" envDefault:"16"`
}

type Config struct {
	Addr string `env:"QUIZ_ADDR" envDefault:":8080"`
	Quiz QuizConf
}

// LoadConfig loads an optional .env file and parses the environment.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
