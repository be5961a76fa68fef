package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	NoticeWindowHours        int    `yaml:"notice_window_hours"`
	AllowAnyDay2DaysRule     bool   `yaml:"allow_any_day_2_days_rule"`
	ReconciliationWindowDays int    `yaml:"reconciliation_window_days"`
	ManagerDisplayName       string `yaml:"manager_display_name"`
	StandardShiftTimeDefault string `yaml:"standard_shift_time_default"`
	ReferenceYear            int    `yaml:"reference_year"`

	DBPath          string `yaml:"db_path"`
	NoticeOutputDir string `yaml:"notice_output_dir"`
	InboxDir        string `yaml:"inbox_dir"`
	ProcessSchedule string `yaml:"process_schedule"`
	Timezone        string `yaml:"timezone"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	NoticeChannelID string `yaml:"notice_channel_id"`
	ManagerSlackID  string `yaml:"manager_slack_id"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverrideInt(&cfg.NoticeWindowHours, "NOTICE_WINDOW_HOURS")
	envOverrideBool(&cfg.AllowAnyDay2DaysRule, "ALLOW_ANY_DAY_2_DAYS_RULE")
	envOverrideInt(&cfg.ReconciliationWindowDays, "RECONCILIATION_WINDOW_DAYS")
	envOverride(&cfg.ManagerDisplayName, "MANAGER_DISPLAY_NAME")
	envOverride(&cfg.StandardShiftTimeDefault, "STANDARD_SHIFT_TIME_DEFAULT")
	envOverrideInt(&cfg.ReferenceYear, "REFERENCE_YEAR")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.NoticeOutputDir, "NOTICE_OUTPUT_DIR")
	envOverride(&cfg.InboxDir, "INBOX_DIR")
	envOverride(&cfg.ProcessSchedule, "PROCESS_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.NoticeChannelID, "NOTICE_CHANNEL_ID")
	envOverride(&cfg.ManagerSlackID, "MANAGER_SLACK_ID")

	// Defaults
	if cfg.NoticeWindowHours == 0 {
		cfg.NoticeWindowHours = 48
	}
	if cfg.ReconciliationWindowDays == 0 {
		cfg.ReconciliationWindowDays = 14
	}
	if cfg.ManagerDisplayName == "" {
		cfg.ManagerDisplayName = "Management"
	}
	if cfg.StandardShiftTimeDefault == "" {
		cfg.StandardShiftTimeDefault = "6:00pm - 10:00pm"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./attendancebot.db"
	}
	if cfg.NoticeOutputDir == "" {
		cfg.NoticeOutputDir = "./notices"
	}
	if cfg.InboxDir == "" {
		cfg.InboxDir = "./inbox"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	// Validate
	if cfg.NoticeWindowHours < 12 || cfg.NoticeWindowHours > 72 {
		log.Fatalf("invalid notice_window_hours '%d': must be between 12 and 72", cfg.NoticeWindowHours)
	}
	if cfg.ReconciliationWindowDays < 1 {
		log.Fatalf("invalid reconciliation_window_days '%d': must be >= 1", cfg.ReconciliationWindowDays)
	}
	if !timeRangeRe.MatchString(cfg.StandardShiftTimeDefault) {
		log.Fatalf("invalid standard_shift_time_default '%s': expected a time range like '6:00pm - 10:00pm'", cfg.StandardShiftTimeDefault)
	}
	if cfg.SlackBotToken == "" && (cfg.NoticeChannelID != "" || cfg.ManagerSlackID != "") {
		log.Fatalf("notice_channel_id/manager_slack_id require slack_bot_token")
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	return cfg
}

// resolveReferenceYear is the year against which yearless dates and
// requested timestamps resolve.
func (c Config) resolveReferenceYear(now time.Time) int {
	if c.ReferenceYear > 0 {
		return c.ReferenceYear
	}
	return now.Year()
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != ""
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
