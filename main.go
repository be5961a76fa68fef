package main

import (
	"log"
	"os"
	"time"

	"github.com/slack-go/slack"
)

func main() {
	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	os.MkdirAll(cfg.NoticeOutputDir, 0755)

	var api *slack.Client
	if cfg.SlackConfigured() {
		api = slack.New(cfg.SlackBotToken)
	}

	if cfg.ProcessSchedule != "" {
		log.Println("Starting Attendance Bot...")
		StartProcessScheduler(cfg, db, api)
		select {}
	}

	now := time.Now().In(cfg.Location)
	result, models, inserted, err := RunFromInbox(cfg, db, now)
	if err != nil {
		log.Fatalf("Processing run failed: %v", err)
	}
	summary := FormatRunSummary(result, inserted)
	log.Printf("Run complete: %s, %d notices", summary, len(models))
	DeliverNotices(api, cfg, models, summary)
}
