package services

import (
	"context"
	"errors"
	"math"
	"time"

	"nutrilog/models"
	"nutrilog/utils"
)

// MaxSummaryDays bounds a summary range, both ends included.
const MaxSummaryDays = 366

var ErrRangeTooLong = errors.New("range exceeds 366 days")

type AnalyticsService struct {
	store   RecordStore
	catalog *utils.Catalog
	loc     *time.Location
}

func NewAnalyticsService(store RecordStore, catalog *utils.Catalog, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{store: store, catalog: catalog, loc: loc}
}

// ---------- Summary ----------

type NutrAvg struct {
	AvgConsumed float64 `json:"avg_consumed"`
	AvgGoal     float64 `json:"avg_goal,omitempty"`
	AvgPercent  float64 `json:"avg_percent"`
	Unit        string  `json:"unit,omitempty"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Nutrients map[string]NutrAvg `json:"nutrients"`

	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		RecordsCounted     int  `json:"records_counted"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

// Summary averages daily totals over [from, to] (whole days). With
// includeMissing, days without records count as zero days.
func (s *AnalyticsService) Summary(
	ctx context.Context, ownerID string, from, to time.Time, includeMissing bool,
) (*AnalyticsSummary, error) {
	first := utils.DayStart(from, s.loc)
	last := utils.DayStart(to, s.loc)
	if last.Before(first) {
		return nil, errors.New("`to` must be on/after `from`")
	}
	if last.After(first.AddDate(0, 0, MaxSummaryDays-1)) {
		return nil, ErrRangeTooLong
	}

	daily, count, err := s.dailyTotals(ctx, ownerID, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	if includeMissing {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	} else {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if _, ok := daily[d.Format(utils.DateLayout)]; ok {
				dates = append(dates, d)
			}
		}
	}

	type acc struct{ sum, psum float64 }
	m := make(map[string]*acc, s.catalog.Len())
	for _, n := range s.catalog.Names() {
		m[n] = &acc{}
	}
	for _, d := range dates {
		totals := daily[d.Format(utils.DateLayout)] // nil if missing
		for _, def := range s.catalog.All() {
			c := totals[def.Name]
			m[def.Name].sum += c
			m[def.Name].psum += utils.Progress(c, def.Target) * 100.0
		}
	}

	out := &AnalyticsSummary{Nutrients: make(map[string]NutrAvg, s.catalog.Len())}
	out.Range.From = first.Format(utils.DateLayout)
	out.Range.To = last.Format(utils.DateLayout)
	out.Metadata.DaysCounted = len(dates)
	out.Metadata.RecordsCounted = count
	out.Metadata.IncludeMissingDays = includeMissing

	for _, def := range s.catalog.All() {
		out.Nutrients[def.Name] = NutrAvg{
			AvgConsumed: avg(m[def.Name].sum, len(dates)),
			AvgGoal:     def.Target,
			AvgPercent:  avg(m[def.Name].psum, len(dates)),
			Unit:        def.Unit,
		}
	}
	return out, nil
}

// ---------- Weekly Overview ----------

type WeeklyOverviewResponse struct {
	WeekStart string `json:"week_start"`
	Mode      string `json:"mode"` // chart|detailed
	Days      any    `json:"days"`
}

type DayChart struct {
	Date        string             `json:"date"`
	Percentages map[string]float64 `json:"percentages"`
}

type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

type DayDetailed struct {
	Date    string            `json:"date"`
	Metrics map[string]Metric `json:"metrics"`
}

func (s *AnalyticsService) WeeklyOverview(
	ctx context.Context, ownerID string, weekStart time.Time, mode string,
) (*WeeklyOverviewResponse, error) {
	if mode != "chart" && mode != "detailed" {
		return nil, errors.New("mode must be 'chart' or 'detailed'")
	}

	from := utils.StartOfWeek(utils.DayStart(weekStart, s.loc))
	daily, _, err := s.dailyTotals(ctx, ownerID, from, from.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	out := &WeeklyOverviewResponse{
		WeekStart: from.Format(utils.DateLayout),
		Mode:      mode,
	}

	if mode == "chart" {
		days := make([]DayChart, 0, 7)
		for i := 0; i < 7; i++ {
			key := from.AddDate(0, 0, i).Format(utils.DateLayout)
			totals := daily[key]
			p := make(map[string]float64, s.catalog.Len())
			for _, def := range s.catalog.All() {
				p[def.Name] = pct(totals[def.Name], def.Target)
			}
			days = append(days, DayChart{Date: key, Percentages: p})
		}
		out.Days = days
		return out, nil
	}

	days := make([]DayDetailed, 0, 7)
	for i := 0; i < 7; i++ {
		key := from.AddDate(0, 0, i).Format(utils.DateLayout)
		totals := daily[key]
		metrics := make(map[string]Metric, s.catalog.Len())
		for _, def := range s.catalog.All() {
			metrics[def.Name] = Metric{
				Actual:  round2(totals[def.Name]),
				Target:  round2(def.Target),
				Percent: pct(totals[def.Name], def.Target),
			}
		}
		days = append(days, DayDetailed{Date: key, Metrics: metrics})
	}
	out.Days = days
	return out, nil
}

// ---------- internals ----------

// dailyTotals sums records in [from, to) per local date key.
func (s *AnalyticsService) dailyTotals(ctx context.Context, ownerID string, from, to time.Time) (map[string]map[string]float64, int, error) {
	recs, err := s.store.ListByOwner(ctx, ownerID, TimeRange{From: &from, To: &to})
	if err != nil {
		return nil, 0, err
	}
	byDay := make(map[string][]models.IntakeRecord)
	for _, g := range utils.GroupByDay(recs, time.Now().In(s.loc), ownerID) {
		byDay[g.Date.Format(utils.DateLayout)] = g.Records
	}
	out := make(map[string]map[string]float64, len(byDay))
	for k, rs := range byDay {
		out[k] = utils.SumNutrients(rs, s.catalog)
	}
	return out, len(recs), nil
}

// pct is a whole percentage, unclamped.
func pct(actual, goal float64) float64 {
	return round2(utils.Progress(actual, goal) * 100.0)
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
