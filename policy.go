package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ampleNoticeHours is the sentinel used when no real notice interval can
// be computed but the event should be treated as reported well ahead.
const ampleNoticeHours = 1e6

var academicKeywordRes = compileKeywordRes("prelim", "exam", "midterm", "test")

var sickKeywordRes = compileKeywordRes(
	"sick", "ill", "fever", "flu", "covid", "vomit", "vomiting", "nausea",
	"nauseous", "migraine", "throwing up", "threw up", "stomach",
	"food poisoning", "not feeling well", "under the weather",
)

func compileKeywordRes(words ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return res
}

func matchesAnyKeyword(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var startTimeRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm|a|p)?`)

// shiftStart resolves the start of the shift from the event's date plus
// the leading time of its range. Only the start of the range matters.
func shiftStart(ev ShiftEvent) (time.Time, bool) {
	m := startTimeRe.FindStringSubmatch(ev.ShiftTimeRange)
	if m == nil || m[1] == "" {
		return time.Time{}, false
	}
	hour := atoiDefault(m[1], -1)
	minute := atoiDefault(m[2], 0)
	switch strings.ToLower(m[3]) {
	case "pm", "p":
		if hour >= 1 && hour <= 11 {
			hour += 12
		}
	case "am", "a":
		if hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	d := ev.ShiftDate
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), true
}

// calendarDaysBetween is the whole-day difference shiftDay - requestedDay,
// ignoring clock time.
func calendarDaysBetween(requested, shift time.Time) int {
	r := time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(shift.Year(), shift.Month(), shift.Day(), 0, 0, 0, 0, time.UTC)
	return int(s.Sub(r).Hours() / 24)
}

// Classify maps one shift event to exactly one infraction code and point
// delta. It is a pure function: same event and config in, same verdict
// out. Rules apply first-match-wins; there is no unclassified outcome.
func Classify(ev ShiftEvent, cfg Config) Classification {
	verdict := func(code, rationale string) Classification {
		return Classification{Code: code, Rationale: rationale, Points: pointsByCode[code]}
	}

	if ev.Kind == KindPickup {
		if ev.IsHostShift() {
			return verdict(CodeWOHost, "host/door shift pickup")
		}
		return verdict(CodeWO, "shift pickup")
	}

	comment := ev.Comment
	if strings.Contains(strings.ToLower(comment), "final") {
		return verdict(CodePrelim, "final exam conflict")
	}

	start, startOK := shiftStart(ev)
	weekday := ev.ShiftDate.Weekday()

	if matchesAnyKeyword(academicKeywordRes, comment) &&
		(weekday == time.Tuesday || weekday == time.Thursday) &&
		startOK && start.Hour() >= 16 {
		return verdict(CodePrelim, "academic conflict on an evening exam day")
	}

	hasRequested := !ev.RequestedAt.IsZero()
	notice := float64(ampleNoticeHours)
	if hasRequested && startOK {
		notice = start.Sub(ev.RequestedAt).Hours()
	}

	if matchesAnyKeyword(sickKeywordRes, comment) {
		weekendMorning := (weekday == time.Saturday || weekday == time.Sunday) &&
			startOK && start.Hour() < 14
		if notice >= 2 || weekendMorning {
			return verdict(CodeNSS, "sick call with notice")
		}
		return verdict(CodeNSLS, fmt.Sprintf("sick call with only %.1fh notice", notice))
	}

	if !hasRequested || notice < 0 {
		return verdict(CodeNSNC, "no usable notice before the shift")
	}

	if cfg.AllowAnyDay2DaysRule && calendarDaysBetween(ev.RequestedAt, ev.ShiftDate) >= 2 {
		return verdict(CodeNSC, "reported two or more calendar days ahead")
	}

	if notice >= float64(cfg.NoticeWindowHours) {
		return verdict(CodeNSC, fmt.Sprintf("reported %.1fh ahead", notice))
	}
	return verdict(CodeNSLC, fmt.Sprintf("reported only %.1fh ahead", notice))
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}
