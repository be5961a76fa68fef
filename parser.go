package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var collapseWSRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(collapseWSRe.ReplaceAllString(s, " "))
}

// Chrome words that leak into pasted scheduling pages from buttons and
// column headers. A name candidate containing one is never a real name.
var reservedChromeWords = map[string]bool{
	"approve":    true,
	"deny":       true,
	"pickup":     true,
	"unassigned": true,
	"comment":    true,
	"request":    true,
	"from":       true,
	"through":    true,
	"reject":     true,
}

// Role abbreviations that precede names on call-off pages.
var roleAbbrevWords = map[string]bool{
	"student": true,
	"host":    true,
	"din":     true,
	"br":      true,
	"supe":    true,
	"fsw":     true,
}

var weekdayWords = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

var (
	timeRangeRe       = regexp.MustCompile(`^(?i)\d{1,2}(?::\d{2})?\s*(?:am|pm|a|p)?\s*-\s*\d{1,2}(?::\d{2})?\s*(?:am|pm|a|p)?$`)
	timeRangeSearchRe = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm|a|p)?\s*-\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)

	// Requested-timestamp marker on call-off pages, e.g. "Jan-05-3:42p".
	requestedStampRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)-(\d{1,2})-(\d{1,2}):(\d{2})\s*([ap])m?\b`)

	callOffAnchorRe = regexp.MustCompile(
		`(?:Approve\s+Deny\s+|Deny\s+)?` +
			`((?:[A-Z][A-Za-z'.-]*\s+){1,2}[A-Z][A-Za-z'.-]*)[\s,]+` +
			`((?:(?:Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday),?\s+)?` +
			`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}` +
			`|\d{1,2}/\d{1,2}/\d{2,4})`)
)

var stampMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Boilerplate fragments stripped from call-off comments. Longer phrases
// first so their words are not orphaned by a shorter strip.
var boilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bapprove\s+deny\b`),
	regexp.MustCompile(`(?i)\bcall[ -]off request\b`),
	regexp.MustCompile(`(?i)\brequested on\b`),
	regexp.MustCompile(`(?i)\bapprove\b`),
	regexp.MustCompile(`(?i)\bdeny\b`),
	regexp.MustCompile(`(?i)\bsubmitted\b`),
	regexp.MustCompile(`(?i)\brequested\b`),
	regexp.MustCompile(`(?i)\breason:`),
	regexp.MustCompile(`(?i)\bcomment:`),
}

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
}

var dateLayoutsNoYear = []string{
	"January 2",
	"Jan 2",
	"1/2",
}

// parseFlexibleDate accepts the date forms seen across the exports. A
// leading weekday ("Friday, ...") is tolerated. Yearless forms resolve
// against refYear.
func parseFlexibleDate(s string, refYear int) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " ,"); i > 0 {
		if weekdayWords[strings.ToLower(strings.Trim(s[:i], ","))] {
			s = strings.TrimSpace(strings.TrimLeft(s[i:], ", "))
		}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	for _, layout := range dateLayoutsNoYear {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(refYear, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func isCapWord(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

func isReservedWord(tok string) bool {
	return reservedChromeWords[strings.ToLower(strings.Trim(tok, ",.:"))]
}

func isRoleWord(tok string) bool {
	return roleAbbrevWords[strings.ToLower(strings.Trim(tok, ",.:"))]
}

func isWeekdayToken(tok string) bool {
	return weekdayWords[strings.ToLower(strings.Trim(tok, ","))]
}

// ParsePickupPage extracts shift pickup events from a pasted pickup
// page. The repeating shape is
//
//	<Name> <Weekday, Month Day, Year> <Start> - <End> [PositionTag]
//
// Anchoring is on the date: each "Weekday, Month Day, Year" run is
// located first and the 2-3 capitalized name tokens are captured
// immediately before it, trimming stray chrome words off the front so a
// genuine name following UI text is not lost. Candidates with an
// unparseable date, no name, or no time range are dropped silently.
func ParsePickupPage(text string, now time.Time) []ShiftEvent {
	tokens := strings.Fields(text)

	type pickupAnchor struct {
		nameStart int
		name      string
		date      time.Time
		afterDate int
	}
	var anchors []pickupAnchor
	for d := 1; d+3 < len(tokens); d++ {
		if !strings.HasSuffix(tokens[d], ",") || !isWeekdayToken(tokens[d]) {
			continue
		}
		date, ok := parseFlexibleDate(strings.Join(tokens[d+1:d+4], " "), now.Year())
		if !ok {
			continue
		}
		name, nameStart, ok := captureNameBefore(tokens, d)
		if !ok {
			continue
		}
		anchors = append(anchors, pickupAnchor{nameStart, name, date, d + 4})
	}

	var events []ShiftEvent
	lastEnd := 0
	for k, a := range anchors {
		if a.nameStart < lastEnd {
			continue
		}
		rangeStr, afterTime, ok := consumeTimeRange(tokens, a.afterDate)
		if !ok {
			continue
		}
		tagEnd := len(tokens)
		if k+1 < len(anchors) && anchors[k+1].nameStart < tagEnd {
			tagEnd = anchors[k+1].nameStart
		}
		if tagEnd > afterTime+4 {
			tagEnd = afterTime + 4
		}
		if tagEnd < afterTime {
			tagEnd = afterTime
		}
		tagToks := tokens[afterTime:tagEnd]
		for i, t := range tagToks {
			if isReservedWord(t) {
				tagToks = tagToks[:i]
				break
			}
		}
		events = append(events, ShiftEvent{
			EmployeeName:   a.name,
			ShiftDate:      a.date,
			ShiftTimeRange: rangeStr,
			RequestedAt:    now,
			Comment:        "Shift pickup",
			Kind:           KindPickup,
			PositionTag:    strings.Join(tagToks, " "),
		})
		lastEnd = afterTime
	}
	return events
}

// captureNameBefore collects up to three capitalized tokens immediately
// preceding index d, then trims chrome words off the front. At least two
// clean tokens must remain.
func captureNameBefore(tokens []string, d int) (string, int, bool) {
	start := d
	for start > 0 && d-start < 3 && isCapWord(tokens[start-1]) && !isWeekdayToken(tokens[start-1]) {
		start--
	}
	window := tokens[start:d]
	for len(window) > 0 && isReservedWord(window[0]) {
		window = window[1:]
		start++
	}
	if len(window) < 2 {
		return "", 0, false
	}
	for _, tok := range window {
		if isReservedWord(tok) {
			return "", 0, false
		}
	}
	return strings.Join(window, " "), start, true
}

// consumeTimeRange matches a "<start> - <end>" run beginning at token i,
// whether the range was pasted as one token or three.
func consumeTimeRange(tokens []string, i int) (string, int, bool) {
	for n := 1; n <= 3 && i+n <= len(tokens); n++ {
		joined := strings.Join(tokens[i:i+n], " ")
		if timeRangeRe.MatchString(joined) {
			return joined, i + n, true
		}
	}
	return "", i, false
}

// ParseCallOffPage extracts call-off events from a pasted call-off page.
// Anchors are (name, date) pairs, optionally preceded by "Approve Deny"
// chrome, deduplicated by (match key, date). The text span up to the
// next anchor supplies the time range (or the configured default), the
// free-text comment, and the requested timestamp. When no timestamp
// marker is present the requested time falls back to the injected
// processing time; that is an approximation that biases the event toward
// a no-notice classification, not a reading of the source.
func ParseCallOffPage(text string, cfg Config, now time.Time) []ShiftEvent {
	collapsed := collapseWhitespace(text)
	refYear := cfg.resolveReferenceYear(now)

	type callOffAnchor struct {
		name       string
		date       time.Time
		start, end int
	}
	var anchors []callOffAnchor
	seen := make(map[string]bool)
	for _, m := range callOffAnchorRe.FindAllStringSubmatchIndex(collapsed, -1) {
		name, ok := cleanCallOffName(collapsed[m[2]:m[3]])
		if !ok {
			continue
		}
		date, ok := parseFlexibleDate(collapsed[m[4]:m[5]], refYear)
		if !ok {
			continue
		}
		dedupKey := MatchKey(name) + "|" + date.Format("2006-01-02")
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true
		anchors = append(anchors, callOffAnchor{name, date, m[0], m[1]})
	}

	var events []ShiftEvent
	for k, a := range anchors {
		spanEnd := len(collapsed)
		if k+1 < len(anchors) {
			spanEnd = anchors[k+1].start
		}
		span := collapsed[a.end:spanEnd]

		timeRange := timeRangeSearchRe.FindString(span)
		if timeRange == "" {
			timeRange = cfg.StandardShiftTimeDefault
		}

		requestedAt := now
		commentEnd := len(span)
		if m := requestedStampRe.FindStringSubmatchIndex(span); m != nil {
			commentEnd = m[0]
			if ts, ok := parseRequestedStamp(span[m[0]:m[1]], refYear); ok {
				requestedAt = ts
			}
		}

		events = append(events, ShiftEvent{
			EmployeeName:   a.name,
			ShiftDate:      a.date,
			ShiftTimeRange: timeRange,
			RequestedAt:    requestedAt,
			Comment:        cleanCallOffComment(span[:commentEnd], timeRange),
			Kind:           KindCallOff,
		})
	}
	return events
}

// cleanCallOffName trims chrome and role words off the front of a raw
// anchor name and weekday words off the back (the anchor regex can
// absorb a trailing weekday into the name group).
func cleanCallOffName(raw string) (string, bool) {
	toks := strings.Fields(raw)
	for len(toks) > 0 && (isReservedWord(toks[0]) || isRoleWord(toks[0])) {
		toks = toks[1:]
	}
	for len(toks) > 0 && isWeekdayToken(toks[len(toks)-1]) {
		toks = toks[:len(toks)-1]
	}
	if len(toks) < 2 || len(toks) > 3 {
		return "", false
	}
	for _, tok := range toks {
		if isReservedWord(tok) || isRoleWord(tok) {
			return "", false
		}
	}
	return strings.Join(toks, " "), true
}

func cleanCallOffComment(span, timeRange string) string {
	if timeRange != "" {
		span = strings.Replace(span, timeRange, " ", 1)
	}
	for _, re := range boilerplateRes {
		span = re.ReplaceAllString(span, " ")
	}
	return strings.Trim(collapseWhitespace(span), " -–:,.")
}

// parseRequestedStamp converts a "Mon-DD-HH:MMa/p" marker into a full
// timestamp in the reference year, 12-hour converted to 24-hour.
func parseRequestedStamp(s string, refYear int) (time.Time, bool) {
	m := requestedStampRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := stampMonths[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[3])
	minute, _ := strconv.Atoi(m[4])
	if day < 1 || day > 31 || hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	if strings.EqualFold(m[5], "p") {
		if hour != 12 {
			hour += 12
		}
	} else if hour == 12 {
		hour = 0
	}
	return time.Date(refYear, month, day, hour, minute, 0, 0, time.UTC), true
}
