package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/simp-lee/bookstore/internal/app"
	"github.com/simp-lee/bookstore/internal/config"
)

func main() {
	// Local overrides are optional.
	_ = godotenv.Load(".env.local")

	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
