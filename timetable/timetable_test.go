package timetable

import (
	"testing"
	"time"

	"github.com/tzgrid/tzgrid/country"
)

// Fixed run dates so DST state is known regardless of when tests run.
var (
	summerDate = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	winterDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
)

func mustResolve(t *testing.T, code string) country.Entry {
	t.Helper()
	entry, err := country.Resolve(code)
	if err != nil {
		t.Fatalf("failed to resolve %q: %v", code, err)
	}
	return entry
}

func Test_Classify(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		minute   int
		expected Bucket
	}{
		{name: "midnight", hour: 0, minute: 0, expected: EarlyLate},
		{name: "early morning", hour: 6, minute: 0, expected: EarlyLate},
		{name: "just before nine", hour: 8, minute: 59, expected: EarlyLate},
		{name: "half past eight", hour: 8, minute: 30, expected: EarlyLate},
		{name: "nine exactly", hour: 9, minute: 0, expected: Normal},
		{name: "late morning", hour: 11, minute: 30, expected: Normal},
		{name: "noon", hour: 12, minute: 0, expected: Noon},
		{name: "half past noon", hour: 12, minute: 30, expected: Noon},
		{name: "one pm", hour: 13, minute: 0, expected: Normal},
		{name: "half past five", hour: 17, minute: 30, expected: Normal},
		{name: "six pm", hour: 18, minute: 0, expected: EarlyLate},
		{name: "evening", hour: 21, minute: 45, expected: EarlyLate},
		{name: "last hour", hour: 23, minute: 0, expected: EarlyLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := time.Date(2024, 7, 15, tt.hour, tt.minute, 0, 0, time.UTC)
			result := Classify(local)
			if result != tt.expected {
				t.Errorf("Classify(%02d:%02d): expected %v, got %v", tt.hour, tt.minute, tt.expected, result)
			}
		})
	}
}

// Every hour of the day maps to exactly one bucket.
func Test_Classify_total(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		local := time.Date(2024, 7, 15, hour, 0, 0, 0, time.UTC)
		bucket := Classify(local)
		if bucket != Normal && bucket != EarlyLate && bucket != Noon {
			t.Errorf("hour %d produced unexpected bucket %d", hour, bucket)
		}
	}
}

func Test_Bucket_String(t *testing.T) {
	tests := []struct {
		bucket   Bucket
		expected string
	}{
		{Normal, "normal"},
		{EarlyLate, "early_late"},
		{Noon, "noon"},
	}
	for _, tt := range tests {
		if tt.bucket.String() != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, tt.bucket.String())
		}
	}
}

func Test_Build_referenceAtNineIsThreeInUSEast(t *testing.T) {
	fra := mustResolve(t, "FRA")
	usaE := mustResolve(t, "USA-E")

	table, err := Build(fra, []country.Entry{usaE}, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Window runs 8..19; reference 9:00 is cell index 1.
	cell := table.Rows[0].Cells[1]
	if cell.Local.Hour() != 3 {
		t.Errorf("Expected local hour 3, got %d", cell.Local.Hour())
	}
	if cell.Bucket != EarlyLate {
		t.Errorf("Expected early_late bucket, got %v", cell.Bucket)
	}
}

func Test_Build_referenceNoonIsNoonAtHome(t *testing.T) {
	fra := mustResolve(t, "FRA")

	table, err := Build(fra, []country.Entry{fra}, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cell := table.Rows[0].Cells[12-WorkStart]
	if cell.Local.Hour() != 12 {
		t.Errorf("Expected local hour 12, got %d", cell.Local.Hour())
	}
	if cell.Bucket != Noon {
		t.Errorf("Expected noon bucket, got %v", cell.Bucket)
	}
}

func Test_Build_cellCountAndWindow(t *testing.T) {
	fra := mustResolve(t, "FRA")
	jpn := mustResolve(t, "JPN")

	table, err := Build(fra, []country.Entry{jpn}, winterDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(table.Rows))
	}
	if len(table.Rows[0].Cells) != WorkEnd-WorkStart {
		t.Errorf("Expected %d cells, got %d", WorkEnd-WorkStart, len(table.Rows[0].Cells))
	}

	// Paris winter is UTC+1, Tokyo UTC+9: ref 8:00 is 16:00 in Japan.
	if got := table.Rows[0].Cells[0].Local.Hour(); got != 16 {
		t.Errorf("Expected first cell local hour 16, got %d", got)
	}
}

func Test_Build_halfHourOffsetZone(t *testing.T) {
	fra := mustResolve(t, "FRA")
	ind := mustResolve(t, "IND")

	table, err := Build(fra, []country.Entry{ind}, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := table.Rows[0]
	if !row.HalfHourOffset {
		t.Error("Expected India row to be flagged as half-hour offset")
	}
	if row.OffsetMinutes != 330 {
		t.Errorf("Expected offset 330 minutes, got %d", row.OffsetMinutes)
	}

	// Paris summer +2, Kolkata +5:30: ref 8:00 is 11:30 local.
	first := row.Cells[0].Local
	if first.Hour() != 11 || first.Minute() != 30 {
		t.Errorf("Expected 11:30 local, got %02d:%02d", first.Hour(), first.Minute())
	}
}

func Test_Build_rowsSortedByFirstCell(t *testing.T) {
	fra := mustResolve(t, "FRA")
	targets := []country.Entry{
		mustResolve(t, "JPN"),
		mustResolve(t, "USA-P"),
		mustResolve(t, "GBR"),
	}

	table, err := Build(fra, targets, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(table.Rows); i++ {
		prev := table.Rows[i-1].Cells[0].Local
		cur := table.Rows[i].Cells[0].Local
		prevMin := prev.Hour()*60 + prev.Minute()
		curMin := cur.Hour()*60 + cur.Minute()
		if prevMin > curMin {
			t.Errorf("rows out of order: %s (%02d:%02d) before %s (%02d:%02d)",
				table.Rows[i-1].Country.Code, prev.Hour(), prev.Minute(),
				table.Rows[i].Country.Code, cur.Hour(), cur.Minute())
		}
	}
}

// Repeated builds at the same instant must agree on every offset.
func Test_Build_offsetIdempotent(t *testing.T) {
	fra := mustResolve(t, "FRA")
	targets := []country.Entry{mustResolve(t, "USA-E"), mustResolve(t, "AUS-E")}

	first, err := Build(fra, targets, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Build(fra, targets, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Rows {
		if first.Rows[i].OffsetMinutes != second.Rows[i].OffsetMinutes {
			t.Errorf("row %d: offsets differ between runs: %d vs %d",
				i, first.Rows[i].OffsetMinutes, second.Rows[i].OffsetMinutes)
		}
	}
}

func Test_Build_invalidZone(t *testing.T) {
	bad := country.Entry{Code: "BAD", Name: "Broken", Zone: "Invalid/Zone"}
	fra := mustResolve(t, "FRA")

	if _, err := Build(bad, nil, summerDate); err == nil {
		t.Error("expected error for invalid reference zone")
	}
	if _, err := Build(fra, []country.Entry{bad}, summerDate); err == nil {
		t.Error("expected error for invalid target zone")
	}
}

func Test_Table_Title(t *testing.T) {
	fra := mustResolve(t, "FRA")

	summer, err := Build(fra, []country.Entry{fra}, summerDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summer.Title() != "Summer time in France (GMT +02:00)" {
		t.Errorf("unexpected summer title: %q", summer.Title())
	}

	winter, err := Build(fra, []country.Entry{fra}, winterDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winter.Title() != "Winter time in France (GMT +01:00)" {
		t.Errorf("unexpected winter title: %q", winter.Title())
	}
}

func Test_FormatOffset(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{"positive whole hour", 120, "+02:00"},
		{"negative whole hour", -300, "-05:00"},
		{"zero", 0, "+00:00"},
		{"positive half hour", 330, "+05:30"},
		{"negative half hour", -210, "-03:30"},
		{"quarter hour", 345, "+05:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOffset(tt.minutes); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func Test_FormatLocal(t *testing.T) {
	whole := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	if got := FormatLocal(whole); got != "09:00" {
		t.Errorf("Expected 09:00, got %q", got)
	}
	half := time.Date(2024, 7, 15, 11, 30, 0, 0, time.UTC)
	if got := FormatLocal(half); got != "11:30" {
		t.Errorf("Expected 11:30, got %q", got)
	}
}

func Test_Hours(t *testing.T) {
	table := &Table{}
	hours := table.Hours()
	if len(hours) != 12 {
		t.Fatalf("Expected 12 header hours, got %d", len(hours))
	}
	if hours[0] != 8 || hours[len(hours)-1] != 19 {
		t.Errorf("Expected header 8..19, got %d..%d", hours[0], hours[len(hours)-1])
	}
}
