package utils

import (
	"sort"
	"time"

	"nutrilog/models"
)

// DayGroup is one calendar day of intake records.
type DayGroup struct {
	Label   string
	Date    time.Time // local midnight
	Records []models.IntakeRecord
}

type DayGroups []DayGroup

// Lookup returns the records filed under label.
func (g DayGroups) Lookup(label string) ([]models.IntakeRecord, bool) {
	for _, d := range g {
		if d.Label == label {
			return d.Records, true
		}
	}
	return nil, false
}

// GroupByDay buckets ownerID's records by local calendar date in now's
// location. Days come most recent first; records keep their input order
// within a day. Labels are derived from now on every call.
func GroupByDay(records []models.IntakeRecord, now time.Time, ownerID string) DayGroups {
	loc := now.Location()
	idx := make(map[time.Time]int)
	groups := DayGroups{}
	for _, r := range records {
		if r.OwnerID != ownerID {
			continue
		}
		day := DayStart(r.CapturedAt, loc)
		i, ok := idx[day]
		if !ok {
			groups = append(groups, DayGroup{Label: DayLabel(day, now), Date: day})
			i = len(groups) - 1
			idx[day] = i
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// SumNutrients totals every recognized nutrient across records. The result
// always holds every catalog nutrient; keys the catalog does not know are
// dropped.
func SumNutrients(records []models.IntakeRecord, catalog *Catalog) map[string]float64 {
	totals := make(map[string]float64, catalog.Len())
	for _, name := range catalog.order {
		totals[name] = 0
	}
	for _, r := range records {
		for name, amount := range r.Breakdown() {
			if _, ok := totals[name]; !ok {
				continue
			}
			totals[name] += amount
		}
	}
	return totals
}
