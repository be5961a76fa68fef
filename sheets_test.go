package main

import (
	"testing"
	"time"
)

func TestParseGridLogWithNameColumn(t *testing.T) {
	text := "\ufeffEmployee\t1/5\t1/6\t1/7\n" +
		"Doe, Jane\tNS/LC\t\tWO\n" +
		"Smith, John\t\tNS/S\tx\n"

	grid := ParseGridLog(text, 2026)

	if len(grid.Infractions) != 2 {
		t.Fatalf("expected 2 infractions, got %+v", grid.Infractions)
	}
	first := grid.Infractions[0]
	if first.Name != "Doe, Jane" || first.Code != CodeNSLC || !first.Date.Equal(date(t, "2026-01-05")) {
		t.Fatalf("unexpected infraction %+v", first)
	}
	if first.Key != "jane doe" {
		t.Fatalf("unexpected key %q", first.Key)
	}
	second := grid.Infractions[1]
	if second.Code != CodeNSS || !second.Date.Equal(date(t, "2026-01-06")) {
		t.Fatalf("unexpected infraction %+v", second)
	}

	if len(grid.WorkOffs) != 1 {
		t.Fatalf("expected 1 work-off, got %+v", grid.WorkOffs)
	}
	wo := grid.WorkOffs[0]
	if wo.Key != "jane doe" || !wo.Date.Equal(date(t, "2026-01-07")) || wo.Source != "grid" {
		t.Fatalf("unexpected work-off %+v", wo)
	}
}

func TestParseGridLogAllDateHeader(t *testing.T) {
	text := "1/5\t1/6\n" +
		"Doe, Jane\tNS/NC\tWO Host\n"

	grid := ParseGridLog(text, 2026)

	if len(grid.Infractions) != 1 || !grid.Infractions[0].Date.Equal(date(t, "2026-01-05")) {
		t.Fatalf("unexpected infractions %+v", grid.Infractions)
	}
	if len(grid.WorkOffs) != 1 || !grid.WorkOffs[0].Date.Equal(date(t, "2026-01-06")) {
		t.Fatalf("unexpected work-offs %+v", grid.WorkOffs)
	}
}

func TestParseGridLogTokenRecognitionIsCaseSensitive(t *testing.T) {
	text := "Employee\t1/5\t1/6\n" +
		"Doe, Jane\tns/lc\two\n"
	grid := ParseGridLog(text, 2026)
	if len(grid.Infractions) != 0 || len(grid.WorkOffs) != 0 {
		t.Fatalf("lowercase tokens must not be recognized: %+v", grid)
	}
}

func TestParseSummaryList(t *testing.T) {
	text := "Name\tNS/C\tNS/LC\tNS/NC\tNS/S\tNS/LS\tCoupon\tbreak\tTotal\n" +
		"Doe, Jane\t1\t\tx\t0\t2\t\t\t4\n" +
		"Smith, John\t1\n"

	aggs := ParseSummaryList(text)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}

	jane := aggs[0]
	if jane.Name != "Doe, Jane" || jane.TotalPoints != 4 {
		t.Fatalf("unexpected aggregate %+v", jane)
	}
	want := map[string]int{CodeNSC: 1, CodeNSLC: 0, CodeNSNC: 0, CodeNSS: 0, CodeNSLS: 2, CodeCoupon: 0, CodeBreak: 0}
	for code, n := range want {
		if jane.Counts[code] != n {
			t.Fatalf("count[%s] = %d, want %d", code, jane.Counts[code], n)
		}
	}

	// Ragged row: everything past the first counter defaults to zero.
	john := aggs[1]
	if john.Counts[CodeNSC] != 1 || john.TotalPoints != 0 {
		t.Fatalf("unexpected aggregate %+v", john)
	}
}

func TestParseWorkOffList(t *testing.T) {
	text := "Full Shift\tDate\tDoor Shift\tDate\n" +
		"Doe, Jane\t1/12\tSmith, John\t1/13\n" +
		"Roe, Rick\t1/20\t\t\n" +
		"\t\t\t\n"

	recs := ParseWorkOffList(text, 2026)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %+v", recs)
	}

	assertRec := func(i int, key, day, source string) {
		t.Helper()
		r := recs[i]
		if r.Key != key || !r.Date.Equal(date(t, day)) || r.Source != source {
			t.Fatalf("record %d = %+v, want key=%s date=%s source=%s", i, r, key, day, source)
		}
	}
	assertRec(0, "jane doe", "2026-01-12", "full")
	assertRec(1, "john smith", "2026-01-13", "door")
	assertRec(2, "rick roe", "2026-01-20", "full")
}

func TestParseWorkOffListSkipsGroupsMissingData(t *testing.T) {
	// Name without a date, date without a name.
	text := "Doe, Jane\t\t\t1/13\n"
	if recs := ParseWorkOffList(text, 2026); len(recs) != 0 {
		t.Fatalf("expected no records, got %+v", recs)
	}
}

func TestParseFlexibleDateForms(t *testing.T) {
	want := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"1/5/2026", "1/5/26", "1/5", "Jan 5", "Jan 5, 2026",
		"January 5, 2026", "Monday, January 5, 2026", "2026-01-05",
	} {
		got, ok := parseFlexibleDate(in, 2026)
		if !ok {
			t.Fatalf("parseFlexibleDate(%q) failed", in)
		}
		if !got.Equal(want) {
			t.Fatalf("parseFlexibleDate(%q) = %s, want %s", in, got, want)
		}
	}
	for _, in := range []string{"", "Employee", "13/45/2026", "total"} {
		if _, ok := parseFlexibleDate(in, 2026); ok {
			t.Fatalf("parseFlexibleDate(%q) should fail", in)
		}
	}
}
