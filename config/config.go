package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DbDsn      string
	TgToken    string
	ListenAddr string
	PublicURL  string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, reading environment directly")
		}

		config = &Config{
			DbDsn:      os.Getenv("DB_DSN"),
			TgToken:    os.Getenv("TG_TOKEN"),
			ListenAddr: os.Getenv("LISTEN_ADDR"),
			PublicURL:  os.Getenv("PUBLIC_URL"),
		}
		if config.ListenAddr == "" {
			config.ListenAddr = ":8005"
		}
		if config.PublicURL == "" {
			config.PublicURL = "http://localhost:8005"
		}
	})
	return config
}
