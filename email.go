package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// workOffPool is the set of not-yet-consumed make-up shifts for one
// employee, kept oldest-first. Consumption returns a new pool value; a
// pool belongs to exactly one assembly run and is never shared.
type workOffPool []WorkOffRecord

// take removes and returns the oldest record satisfying keep.
func (p workOffPool) take(keep func(WorkOffRecord) bool) (WorkOffRecord, workOffPool, bool) {
	for i, rec := range p {
		if keep(rec) {
			rest := make(workOffPool, 0, len(p)-1)
			rest = append(rest, p[:i]...)
			rest = append(rest, p[i+1:]...)
			return rec, rest, true
		}
	}
	return WorkOffRecord{}, p, false
}

// combineWorkOffPools merges the expiration-list records with work-off
// tokens found directly in the grid, dropping grid entries that
// duplicate an expiration entry for the same employee and date.
func combineWorkOffPools(expiration, grid []WorkOffRecord) []WorkOffRecord {
	seen := make(map[string]bool)
	var out []WorkOffRecord
	add := func(recs []WorkOffRecord) {
		for _, r := range recs {
			k := r.Key + "|" + r.Date.Format("2006-01-02")
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, r)
		}
	}
	add(expiration)
	add(grid)
	return out
}

// AssembleEmployeeNotices merges the three tabular exports into one
// notice per employee with a positive point total. Dated infractions
// come from the grid; summary counters in excess of what the grid dates
// account for are reconstructed as undated lines in fixed code order.
// Point-bearing lines consume the employee's available work-off pool
// oldest-first: an in-window match reduces the displayed points by one
// and annotates the line, while an infraction older than the window gets
// the no-longer-possible annotation instead.
func AssembleEmployeeNotices(aggs []EmployeeAggregate, grid GridLog, expiration []WorkOffRecord, cfg Config, now time.Time) []EmployeeEmailModel {
	combined := combineWorkOffPools(expiration, grid.WorkOffs)
	window := cfg.ReconciliationWindowDays

	var out []EmployeeEmailModel
	for _, agg := range aggs {
		if agg.TotalPoints <= 0 {
			continue
		}
		key := MatchKey(agg.Name)

		var dated []DatedInfraction
		for _, inf := range grid.Infractions {
			if inf.Key == key {
				dated = append(dated, inf)
			}
		}
		sort.SliceStable(dated, func(i, j int) bool { return dated[i].Date.Before(dated[j].Date) })

		datedCount := make(map[string]int)
		for _, inf := range dated {
			datedCount[inf.Code]++
		}

		var pool workOffPool
		for _, rec := range combined {
			if rec.Key == key {
				pool = append(pool, rec)
			}
		}
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].Date.Before(pool[j].Date) })

		var lines []NoticeLine
		for _, inf := range dated {
			line := NoticeLine{Date: inf.Date, Code: inf.Code, Points: pointsByCode[inf.Code]}
			if line.Points > 0 {
				infDate := inf.Date
				if _, rest, ok := pool.take(func(w WorkOffRecord) bool {
					return absDayDistance(infDate, w.Date) <= window
				}); ok {
					pool = rest
					line.Points--
					line.Annotation = "(already made up)"
				} else if now.Sub(inf.Date) > time.Duration(window)*24*time.Hour {
					line.Annotation = "(can no longer make up at this time)"
				}
			}
			lines = append(lines, line)
		}

		for _, code := range missingCodeOrder {
			missing := agg.Counts[code] - datedCount[code]
			for n := 0; n < missing; n++ {
				line := NoticeLine{Code: code, Points: pointsByCode[code]}
				if line.Points > 0 {
					if _, rest, ok := pool.take(func(WorkOffRecord) bool { return true }); ok {
						pool = rest
						line.Points--
						line.Annotation = "(already made up)"
					} else {
						// Undated infractions predate the dated grid, so
						// the make-up window is treated as elapsed.
						line.Annotation = "(can no longer make up at this time)"
					}
				}
				lines = append(lines, line)
			}
		}

		model := EmployeeEmailModel{
			Name:        agg.Name,
			FirstName:   FirstName(agg.Name),
			TotalPoints: agg.TotalPoints,
			Lines:       lines,
		}
		model.Body = renderNoticeBody(model, cfg)
		out = append(out, model)
	}
	return out
}

// renderNoticeBody renders the plain-text notice. Zero-point lines stay
// in the model but are omitted from the body.
func renderNoticeBody(m EmployeeEmailModel, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", m.FirstName)
	fmt.Fprintf(&b, "Our records show you currently have %d attendance point%s. The incidents on file:\n\n",
		m.TotalPoints, plural(m.TotalPoints))
	for _, line := range m.Lines {
		if line.Points == 0 {
			continue
		}
		when := "(no date on file)"
		if !line.Date.IsZero() {
			when = fmt.Sprintf("%s %s", line.Date.Format("Jan 2"), line.Date.Weekday())
		}
		fmt.Fprintf(&b, "%d: %s : %s", line.Points, when, codeLabels[line.Code])
		if line.Annotation != "" {
			b.WriteString(" " + line.Annotation)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nPoints can be worked off by picking up an open shift within %d days of the incident. Let me know if anything above looks wrong.\n\n", cfg.ReconciliationWindowDays)
	fmt.Fprintf(&b, "Thanks,\n%s\n", cfg.ManagerDisplayName)
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
