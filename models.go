package main

import (
	"strings"
	"time"
)

type EventKind string

const (
	KindPickup  EventKind = "pickup"
	KindCallOff EventKind = "calloff"
)

// Infraction code vocabulary. Codes are case-sensitive everywhere,
// including grid-cell recognition.
const (
	CodeNSC    = "NS/C"
	CodeNSLC   = "NS/LC"
	CodeNSNC   = "NS/NC"
	CodeNSS    = "NS/S"
	CodeNSLS   = "NS/LS"
	CodeWO     = "WO"
	CodeWOHost = "WO Host"
	CodePrelim = "Prelim"

	// Legacy counters carried through aggregates, never produced by the
	// classifier.
	CodeCoupon = "Coupon"
	CodeBreak  = "break"
)

var pointsByCode = map[string]int{
	CodeNSC:    1,
	CodeNSLC:   2,
	CodeNSNC:   3,
	CodeNSS:    0,
	CodeNSLS:   1,
	CodeWO:     -1,
	CodeWOHost: -1,
	CodePrelim: 0,
}

var codeLabels = map[string]string{
	CodeNSC:    "call off with notice",
	CodeNSLC:   "late call off",
	CodeNSNC:   "no call / no show",
	CodeNSS:    "sick call with notice",
	CodeNSLS:   "late sick call",
	CodeWO:     "shift pickup (work-off)",
	CodeWOHost: "host/door shift pickup (work-off)",
	CodePrelim: "excused academic conflict",
}

// missingCodeOrder is the fixed order in which undated infractions are
// reconstructed from summary counters.
var missingCodeOrder = []string{CodeNSC, CodeNSLC, CodeNSNC, CodeNSS, CodeNSLS}

func isPointBearingCallOff(code string) bool {
	switch code {
	case CodeNSC, CodeNSLC, CodeNSNC:
		return true
	}
	return false
}

func isWorkOffCode(code string) bool {
	return code == CodeWO || code == CodeWOHost
}

// ShiftEvent is one extracted scheduling event. Immutable after parsing.
type ShiftEvent struct {
	EmployeeName   string
	ShiftDate      time.Time
	ShiftTimeRange string
	RequestedAt    time.Time // zero when the source carried no usable timestamp
	Comment        string
	Kind           EventKind
	PositionTag    string
}

func (e ShiftEvent) IsHostShift() bool {
	tag := strings.ToLower(e.PositionTag)
	return strings.Contains(tag, "host") || strings.Contains(tag, "door")
}

// Classification is the classifier's verdict for one event. Produced
// once, never mutated.
type Classification struct {
	Code      string
	Rationale string
	Points    int
}

// LedgerEntry pairs an event with its classification. Cancelled is the
// only mutable field and flips false->true at most once, during
// reconciliation.
type LedgerEntry struct {
	Event     ShiftEvent
	Class     Classification
	Cancelled bool
}

// EmployeeAggregate is one row of the summary counters export.
type EmployeeAggregate struct {
	Name        string
	Counts      map[string]int
	TotalPoints int
}

// WorkOffRecord is one available make-up shift. A record is consumed by
// at most one infraction.
type WorkOffRecord struct {
	Key    string // normalized match key
	Date   time.Time
	Source string // "full", "door", or "grid"
}

// DatedInfraction is one recognized infraction token from the grid log.
type DatedInfraction struct {
	Name string
	Key  string
	Date time.Time
	Code string
}

// NoticeLine is one display line of an employee notice. A zero Date
// means the infraction was reconstructed from summary counters and has
// no date on file.
type NoticeLine struct {
	Date       time.Time
	Code       string
	Points     int
	Annotation string
}

// EmployeeEmailModel is one rendered employee notice.
type EmployeeEmailModel struct {
	Name        string
	FirstName   string
	TotalPoints int
	Lines       []NoticeLine
	Body        string
}
