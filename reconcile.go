package main

import "time"

func absDayDistance(a, b time.Time) int {
	d := calendarDaysBetween(a, b)
	if d < 0 {
		d = -d
	}
	return d
}

// Reconcile cancels point-bearing call-off infractions against work-off
// events for the same employee within windowDays of the infraction's
// shift date, in either direction. Matching is greedy in ledger order
// and strictly one-to-one: the first available work-off wins and both
// entries flip to cancelled. This is intentionally not a
// maximum-cardinality matching; the order dependence is the documented
// behavior of the point policy, so leave it greedy.
func Reconcile(entries []LedgerEntry, windowDays int) {
	for i := range entries {
		if entries[i].Cancelled || !isPointBearingCallOff(entries[i].Class.Code) {
			continue
		}
		key := MatchKey(entries[i].Event.EmployeeName)
		for j := range entries {
			w := &entries[j]
			if w.Cancelled || !isWorkOffCode(w.Class.Code) {
				continue
			}
			if MatchKey(w.Event.EmployeeName) != key {
				continue
			}
			if absDayDistance(entries[i].Event.ShiftDate, w.Event.ShiftDate) > windowDays {
				continue
			}
			entries[i].Cancelled = true
			w.Cancelled = true
			break
		}
	}
}
