package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// Input file names expected in the inbox directory. The two pages are
// pasted text; the three .tsv files are spreadsheet exports. Any of
// them may be absent.
const (
	inboxPickups  = "pickups.txt"
	inboxCallOffs = "calloffs.txt"
	inboxGrid     = "grid.tsv"
	inboxSummary  = "summary.tsv"
	inboxWorkOffs = "workoffs.tsv"
)

func readInboxFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading %s: %v", name, err)
		}
		return ""
	}
	return string(data)
}

// RunFromInbox processes whatever input files are present in the inbox
// directory: schedule pages feed the ledger, tabular exports feed the
// notices. It has no Slack dependency so it can be called from both the
// one-shot CLI path and the scheduler.
func RunFromInbox(cfg Config, db *sql.DB, now time.Time) (RunResult, []EmployeeEmailModel, int, error) {
	pickupText := readInboxFile(cfg.InboxDir, inboxPickups)
	callOffText := readInboxFile(cfg.InboxDir, inboxCallOffs)

	result := ProcessSchedulePages(pickupText, callOffText, cfg, now)

	inserted := 0
	if len(result.Entries) > 0 {
		runID, err := InsertRun(db, now, result)
		if err != nil {
			return result, nil, 0, fmt.Errorf("insert run: %w", err)
		}
		inserted, err = InsertLedgerEntries(db, runID, result.Entries)
		if err != nil {
			return result, nil, inserted, fmt.Errorf("insert ledger entries: %w", err)
		}
	}

	gridText := readInboxFile(cfg.InboxDir, inboxGrid)
	summaryText := readInboxFile(cfg.InboxDir, inboxSummary)
	workOffText := readInboxFile(cfg.InboxDir, inboxWorkOffs)

	var models []EmployeeEmailModel
	if summaryText != "" {
		models = BuildNotices(gridText, summaryText, workOffText, cfg, now)
		for _, m := range models {
			if path, err := WriteNoticeDraftFile(m, cfg.NoticeOutputDir, now); err != nil {
				log.Printf("Error writing notice draft for %s: %v", m.Name, err)
			} else {
				log.Printf("Wrote notice draft %s", path)
			}
		}
	}
	return result, models, inserted, nil
}

// StartProcessScheduler starts a cron-based scheduler that periodically
// processes the inbox directory.
// The schedule is a standard 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 9 * * *" (daily 9am), "0 9 * * 1" (Mondays 9am).
func StartProcessScheduler(cfg Config, db *sql.DB, api *slack.Client) {
	schedule := strings.TrimSpace(cfg.ProcessSchedule)
	if schedule == "" {
		log.Println("Scheduled processing disabled (process_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid process_schedule '%s': %v; scheduled processing disabled", schedule, err)
		return
	}

	log.Printf("Processing scheduled (cron: %s) from %s", schedule, cfg.InboxDir)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next processing run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			runNow := time.Now().In(cfg.Location)
			result, models, inserted, runErr := RunFromInbox(cfg, db, runNow)
			summary := FormatRunSummary(result, inserted)
			if runErr != nil {
				log.Printf("Processing run error: %v", runErr)
			}
			log.Printf("Processing run complete: %s, %d notices", summary, len(models))

			DeliverNotices(api, cfg, models, summary)
		}
	}()
}
