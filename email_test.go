package main

import (
	"strings"
	"testing"
	"time"
)

func testEmailConfig() Config {
	return Config{
		NoticeWindowHours:        48,
		ReconciliationWindowDays: 14,
		ManagerDisplayName:       "Alex Morgan",
		StandardShiftTimeDefault: "6:00pm - 10:00pm",
	}
}

func emailNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func TestAssembleNoticesConsumesPoolAndReconstructsMissing(t *testing.T) {
	cfg := testEmailConfig()
	aggs := []EmployeeAggregate{{
		Name:        "Doe, Jane",
		Counts:      map[string]int{CodeNSLC: 2},
		TotalPoints: 3,
	}}
	grid := GridLog{
		Infractions: []DatedInfraction{
			{Name: "Doe, Jane", Key: "jane doe", Date: date(t, "2026-01-05"), Code: CodeNSLC},
		},
		WorkOffs: []WorkOffRecord{
			{Key: "jane doe", Date: date(t, "2026-01-07"), Source: "grid"},
		},
	}
	expiration := []WorkOffRecord{
		{Key: "jane doe", Date: date(t, "2026-01-12"), Source: "full"},
	}

	models := AssembleEmployeeNotices(aggs, grid, expiration, cfg, emailNow(t))
	if len(models) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(models))
	}
	m := models[0]
	if m.FirstName != "Jane" || m.TotalPoints != 3 {
		t.Fatalf("unexpected model header: %+v", m)
	}
	if len(m.Lines) != 2 {
		t.Fatalf("expected 1 dated + 1 reconstructed line, got %+v", m.Lines)
	}

	dated := m.Lines[0]
	if dated.Date.IsZero() || dated.Points != 1 || dated.Annotation != "(already made up)" {
		t.Fatalf("dated line should consume the Jan 7 work-off: %+v", dated)
	}

	undated := m.Lines[1]
	if !undated.Date.IsZero() || undated.Code != CodeNSLC {
		t.Fatalf("second line should be the reconstructed NS/LC: %+v", undated)
	}
	if undated.Points != 1 || undated.Annotation != "(already made up)" {
		t.Fatalf("reconstructed line should consume the remaining pool entry: %+v", undated)
	}
}

func TestAssembleNoticesExpiredAndZeroPointLines(t *testing.T) {
	cfg := testEmailConfig()
	aggs := []EmployeeAggregate{{
		Name:        "Smith, John",
		Counts:      map[string]int{CodeNSNC: 1, CodeNSS: 1},
		TotalPoints: 3,
	}}
	grid := GridLog{
		Infractions: []DatedInfraction{
			{Name: "Smith, John", Key: "john smith", Date: date(t, "2026-01-08"), Code: CodeNSS},
			{Name: "Smith, John", Key: "john smith", Date: date(t, "2026-01-06"), Code: CodeNSNC},
		},
	}

	models := AssembleEmployeeNotices(aggs, grid, nil, cfg, emailNow(t))
	if len(models) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(models))
	}
	m := models[0]
	if len(m.Lines) != 2 {
		t.Fatalf("expected 2 dated lines, got %+v", m.Lines)
	}

	// Dated lines come back in chronological order regardless of grid order.
	if !m.Lines[0].Date.Equal(date(t, "2026-01-06")) || m.Lines[0].Code != CodeNSNC {
		t.Fatalf("lines not chronological: %+v", m.Lines)
	}
	if m.Lines[0].Points != 3 || m.Lines[0].Annotation != "(can no longer make up at this time)" {
		t.Fatalf("stale infraction with no pool should be marked unmakeable: %+v", m.Lines[0])
	}

	// The sick line carries zero points and no annotation.
	if m.Lines[1].Code != CodeNSS || m.Lines[1].Points != 0 || m.Lines[1].Annotation != "" {
		t.Fatalf("unexpected sick line: %+v", m.Lines[1])
	}

	// Zero-point lines are omitted from the body.
	if strings.Contains(m.Body, codeLabels[CodeNSS]) {
		t.Fatalf("zero-point line should not render:\n%s", m.Body)
	}
	if !strings.Contains(m.Body, codeLabels[CodeNSNC]) {
		t.Fatalf("point-bearing line should render:\n%s", m.Body)
	}
}

func TestAssembleNoticesSkipsZeroPointEmployees(t *testing.T) {
	aggs := []EmployeeAggregate{
		{Name: "Roe, Rick", Counts: map[string]int{}, TotalPoints: 0},
		{Name: "Poe, Pat", Counts: map[string]int{}, TotalPoints: -1},
	}
	models := AssembleEmployeeNotices(aggs, GridLog{}, nil, testEmailConfig(), emailNow(t))
	if len(models) != 0 {
		t.Fatalf("employees without points get no notice, got %+v", models)
	}
}

func TestAssembleNoticesDeduplicatesGridAndExpirationPool(t *testing.T) {
	cfg := testEmailConfig()
	aggs := []EmployeeAggregate{{
		Name:        "Doe, Jane",
		Counts:      map[string]int{CodeNSC: 2},
		TotalPoints: 2,
	}}
	// Same work-off reported by both sources: only one consumption.
	grid := GridLog{
		WorkOffs: []WorkOffRecord{{Key: "jane doe", Date: date(t, "2026-01-10"), Source: "grid"}},
	}
	expiration := []WorkOffRecord{{Key: "jane doe", Date: date(t, "2026-01-10"), Source: "full"}}

	models := AssembleEmployeeNotices(aggs, grid, expiration, cfg, emailNow(t))
	if len(models) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(models))
	}
	madeUp := 0
	for _, line := range models[0].Lines {
		if line.Annotation == "(already made up)" {
			madeUp++
		}
	}
	if madeUp != 1 {
		t.Fatalf("duplicated pool entry consumed %d times, want 1: %+v", madeUp, models[0].Lines)
	}
}

func TestRenderNoticeBody(t *testing.T) {
	cfg := testEmailConfig()
	m := EmployeeEmailModel{
		Name:        "Doe, Jane",
		FirstName:   "Jane",
		TotalPoints: 2,
		Lines: []NoticeLine{
			{Date: date(t, "2026-01-05"), Code: CodeNSLC, Points: 2},
			{Code: CodeNSC, Points: 1, Annotation: "(can no longer make up at this time)"},
		},
	}
	body := renderNoticeBody(m, cfg)

	for _, want := range []string{
		"Hi Jane,",
		"2 attendance points",
		"2: Jan 5 Monday : late call off",
		"1: (no date on file) : call off with notice (can no longer make up at this time)",
		"within 14 days",
		"Alex Morgan",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}
