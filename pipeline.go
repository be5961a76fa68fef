package main

import (
	"sort"
	"time"
)

// RunResult tracks per-stage counters for one processing run.
type RunResult struct {
	PickupEvents  int
	CallOffEvents int
	ByCode        map[string]int
	Cancelled     int
	Entries       []LedgerEntry
}

// ProcessSchedulePages runs the text half of the pipeline: extract
// events from both pasted pages, classify each one, reconcile work-offs
// against infractions, and return the ledger sorted chronologically
// (parsers emit document order; export wants shift-date order). The
// injected now is the only non-determinism in the run.
func ProcessSchedulePages(pickupText, callOffText string, cfg Config, now time.Time) RunResult {
	result := RunResult{ByCode: make(map[string]int)}

	events := ParsePickupPage(pickupText, now)
	result.PickupEvents = len(events)
	callOffs := ParseCallOffPage(callOffText, cfg, now)
	result.CallOffEvents = len(callOffs)
	events = append(events, callOffs...)

	entries := make([]LedgerEntry, 0, len(events))
	for _, ev := range events {
		cls := Classify(ev, cfg)
		result.ByCode[cls.Code]++
		entries = append(entries, LedgerEntry{Event: ev, Class: cls})
	}

	Reconcile(entries, cfg.ReconciliationWindowDays)
	for _, e := range entries {
		if e.Cancelled {
			result.Cancelled++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Event.ShiftDate.Before(entries[j].Event.ShiftDate)
	})
	result.Entries = entries
	return result
}

// BuildNotices runs the tabular half of the pipeline: ingest the three
// exports and assemble one notice per employee carrying points.
func BuildNotices(gridText, summaryText, workOffText string, cfg Config, now time.Time) []EmployeeEmailModel {
	refYear := cfg.resolveReferenceYear(now)
	grid := ParseGridLog(gridText, refYear)
	aggs := ParseSummaryList(summaryText)
	expiration := ParseWorkOffList(workOffText, refYear)
	return AssembleEmployeeNotices(aggs, grid, expiration, cfg, now)
}
