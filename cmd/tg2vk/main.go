package main

import (
	"log"

	"github.com/dkeysil/tg2vk/internal/config"
	"github.com/dkeysil/tg2vk/internal/service"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	// .env is optional, real environment variables win.
	_ = godotenv.Load()

	cfg := config.Config{}

	envconfig.MustProcess("", &cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	service.RunApplication(cfg)
}
