package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteNoticeDraftFile(t *testing.T) {
	dir := t.TempDir()
	model := EmployeeEmailModel{
		Name:        "Doe, Jane",
		FirstName:   "Jane",
		TotalPoints: 2,
		Body:        "Hi Jane,\n\nYou have 2 points.\n",
	}
	runDate := time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC)

	path, err := WriteNoticeDraftFile(model, dir, runDate)
	if err != nil {
		t.Fatalf("WriteNoticeDraftFile failed: %v", err)
	}
	if filepath.Base(path) != "Doe_Jane_20260209.eml" {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Subject: Attendance points notice - Doe, Jane") {
		t.Fatalf("missing subject:\n%s", content)
	}
	if !strings.Contains(content, "Content-Type: text/plain; charset=UTF-8") {
		t.Fatalf("missing content type:\n%s", content)
	}
	if !strings.Contains(content, "Hi Jane,\r\n") {
		t.Fatalf("body should be CRLF-normalized:\n%s", content)
	}
}

func TestFormatRunSummary(t *testing.T) {
	result := RunResult{PickupEvents: 2, CallOffEvents: 3, Cancelled: 2}
	got := FormatRunSummary(result, 4)
	for _, want := range []string{"2 pickups", "3 call-offs", "2 cancelled by work-offs", "4 new ledger rows"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q: %s", want, got)
		}
	}

	got = FormatRunSummary(RunResult{}, 0)
	if strings.Contains(got, "cancelled") {
		t.Fatalf("zero cancellations should be omitted: %s", got)
	}
}

func TestRunFromInbox(t *testing.T) {
	dir := t.TempDir()
	noticeDir := filepath.Join(dir, "notices")
	cfg := testEmailConfig()
	cfg.InboxDir = dir
	cfg.NoticeOutputDir = noticeDir

	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	writeFile(inboxPickups, "Jane Doe Friday, January 9, 2026 6:00pm - 10:00pm")
	writeFile(inboxSummary, "Name\tNS/C\tNS/LC\tNS/NC\tNS/S\tNS/LS\tCoupon\tbreak\tTotal\n"+
		"Doe, Jane\t0\t0\t1\t0\t0\t0\t0\t3\n")
	writeFile(inboxGrid, "Employee\t1/6\nDoe, Jane\tNS/NC\n")

	db := newTestDB(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	result, models, inserted, err := RunFromInbox(cfg, db, now)
	if err != nil {
		t.Fatalf("RunFromInbox failed: %v", err)
	}
	if result.PickupEvents != 1 || inserted != 1 {
		t.Fatalf("unexpected run result: %+v inserted=%d", result, inserted)
	}
	if len(models) != 1 || models[0].Name != "Doe, Jane" {
		t.Fatalf("unexpected notices: %+v", models)
	}

	drafts, err := filepath.Glob(filepath.Join(noticeDir, "*.eml"))
	if err != nil {
		t.Fatalf("glob drafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft file, got %v", drafts)
	}

	// Replaying the same inbox adds nothing to the ledger.
	_, _, inserted, err = RunFromInbox(cfg, db, now)
	if err != nil {
		t.Fatalf("second RunFromInbox failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected 0 inserts on replay, got %d", inserted)
	}
}
