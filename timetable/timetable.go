// Package timetable computes working-hour grids across timezones.
//
// A table converts every hour of the reference country's working window into
// the corresponding local wall-clock time for each target country, on a
// single shared date so daylight-saving offsets stay consistent across rows.
package timetable

import (
	"fmt"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/tzgrid/tzgrid/country"
)

// Working window in the reference timezone. The window end is exclusive, so
// cells cover 08:00 through 19:00.
const (
	WorkStart = 8
	WorkEnd   = 20
)

// Bucket classifies a local hour for cell coloring.
type Bucket int

const (
	// Normal covers comfortable working hours.
	Normal Bucket = iota
	// EarlyLate covers hours before 9:00 or from 18:00 on.
	EarlyLate
	// Noon covers the 12:00 lunch hour.
	Noon
)

func (b Bucket) String() string {
	switch b {
	case EarlyLate:
		return "early_late"
	case Noon:
		return "noon"
	default:
		return "normal"
	}
}

// Classify buckets a local time. The thresholds are fixed: before 9:00 or
// from 18:00 is early/late, the 12:00 hour is noon, everything else normal.
// Minutes never move a time across a threshold (the boundaries sit on whole
// hours), so the hour alone decides, fractional-offset zones included.
func Classify(t time.Time) Bucket {
	hour := t.Hour()
	switch {
	case hour < 9 || hour >= 18:
		return EarlyLate
	case hour == 12:
		return Noon
	default:
		return Normal
	}
}

// Cell is one (country, reference hour) grid entry: the local wall-clock
// time in the target zone and its bucket.
type Cell struct {
	Local  time.Time
	Bucket Bucket
}

// Row holds one country's cells plus its UTC offset at the table's
// reference instant.
type Row struct {
	Country        country.Entry
	OffsetMinutes  int
	HalfHourOffset bool
	Cells          []Cell
}

// Table is the full grid for one run.
type Table struct {
	Reference     country.Entry
	Date          time.Time // window start in the reference zone
	OffsetMinutes int       // reference zone offset at Date
	DST           bool      // reference zone in daylight saving at Date
	Rows          []Row
}

// Hours returns the reference-zone header hours, window start to end.
func (t *Table) Hours() []int {
	hours := make([]int, 0, WorkEnd-WorkStart)
	for h := WorkStart; h < WorkEnd; h++ {
		hours = append(hours, h)
	}
	return hours
}

// offsetMinutes returns a zone's UTC offset at instant, in minutes.
func offsetMinutes(instant time.Time, loc *time.Location) int {
	_, seconds := instant.In(loc).Zone()
	return seconds / 60
}

// Build computes the table for the given reference country, targets, and
// date. Every offset and DST decision is taken at the window start on that
// date in the reference zone, so all rows describe the same instant.
func Build(reference country.Entry, targets []country.Entry, date time.Time) (*Table, error) {
	refLoc, err := time.LoadLocation(reference.Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q for %s: %w", reference.Zone, reference.Code, err)
	}

	windowStart := time.Date(date.Year(), date.Month(), date.Day(), WorkStart, 0, 0, 0, refLoc)

	table := &Table{
		Reference:     reference,
		Date:          windowStart,
		OffsetMinutes: offsetMinutes(windowStart, refLoc),
		DST:           windowStart.IsDST(),
	}

	for _, target := range targets {
		loc, err := time.LoadLocation(target.Zone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q for %s: %w", target.Zone, target.Code, err)
		}

		row := Row{
			Country:       target,
			OffsetMinutes: offsetMinutes(windowStart, loc),
		}
		row.HalfHourOffset = row.OffsetMinutes%60 != 0

		for h := WorkStart; h < WorkEnd; h++ {
			refTime := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, refLoc)
			local := refTime.In(loc)
			row.Cells = append(row.Cells, Cell{Local: local, Bucket: Classify(local)})
		}

		table.Rows = append(table.Rows, row)
	}

	// Rows ordered by first-cell local time, ties by name, so the output is
	// stable for a given input set.
	sort.SliceStable(table.Rows, func(i, j int) bool {
		a := table.Rows[i].Cells[0].Local
		b := table.Rows[j].Cells[0].Local
		am := a.Hour()*60 + a.Minute()
		bm := b.Hour()*60 + b.Minute()
		if am != bm {
			return am < bm
		}
		return table.Rows[i].Country.Name < table.Rows[j].Country.Name
	})

	return table, nil
}

// FormatOffset renders a minute offset as "+01:00" / "-03:30".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatLocal renders a cell's local time for display. Fractional-offset
// zones keep their minutes (e.g. "03:30"), everything else shows ":00".
func FormatLocal(t time.Time) string {
	return t.Format("15:04")
}

// Title renders the table caption, e.g. "Summer time in France (GMT +02:00)".
func (t *Table) Title() string {
	season := "Winter"
	if t.DST {
		season = "Summer"
	}
	return fmt.Sprintf("%s time in %s (GMT %s)", season, t.Reference.Name, FormatOffset(t.OffsetMinutes))
}
