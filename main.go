package main

import (
	"flag"
	"log"
	"time"

	"mealbox/config"
	"mealbox/models"
	"mealbox/web"

	"github.com/rohanthewiz/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the config file (defaults to $MEALBOX_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger.SetLogLevel(cfg.Log.Level)

	if err := models.InitJWT(cfg.Session.JWTSecret, time.Duration(cfg.Session.TTLHours)*time.Hour); err != nil {
		log.Fatal("failed to initialize sessions: ", err)
	}

	// Initialize database with dual-database architecture
	if err := models.InitDB(cfg.DB.Path); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}
	defer models.CloseDB()

	if err := models.SeedMenuFile(cfg.Menu.Path); err != nil {
		log.Fatal("failed to seed menu: ", err)
	}

	srv := web.NewServer(cfg)
	if err := web.Run(srv, cfg.Server.Address); err != nil {
		logger.LogErr(err, "server stopped")
	}
}
