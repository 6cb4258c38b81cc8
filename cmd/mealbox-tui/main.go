package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mealbox/config"
	"mealbox/models"
	"mealbox/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the config file (defaults to $MEALBOX_CONFIG)")
	server := flag.String("server", "", "base URL of a running mealbox server; empty edits the local database")
	token := flag.String("token", "", "session token to resume (remote mode)")
	session := flag.String("session", "", "session id to edit (local mode); empty starts a new box")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	// Keep log output off the terminal UI
	logger.SetLogLevel("error")

	var box tui.Box
	if *server != "" {
		rb, err := tui.NewRemoteBox(*server, *token)
		if err != nil {
			log.Fatal("failed to connect: ", err)
		}
		defer fmt.Fprintln(os.Stderr, "session token:", rb.Token())
		box = rb
	} else {
		if err := models.InitDB(cfg.DB.Path); err != nil {
			log.Fatal("failed to initialize database: ", err)
		}
		defer models.CloseDB()
		if err := models.SeedMenuFile(cfg.Menu.Path); err != nil {
			log.Fatal("failed to seed menu: ", err)
		}

		sessionID := *session
		if sessionID == "" {
			sessionID = models.NewSessionID()
		}
		defer fmt.Fprintln(os.Stderr, "session:", sessionID)
		box = tui.LocalBox{SessionID: sessionID, Plan: cfg.Plan, Pricing: cfg.Pricing}
	}

	if _, err := tea.NewProgram(tui.New(box, cfg.Plan)).Run(); err != nil {
		logger.LogErr(err, "terminal client stopped")
	}
}
