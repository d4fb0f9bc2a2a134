package services

import (
	"context"
	"errors"
	"time"

	"nutrilog/models"
	"nutrilog/utils"
)

var ErrUnknownNutrient = errors.New("nutrient not found")

// DashboardService builds the screen read models. Nothing here is cached:
// every call re-reads the store, so a mutation is visible on the next fetch.
type DashboardService struct {
	store   RecordStore
	catalog *utils.Catalog
	loc     *time.Location
	now     func() time.Time
}

func NewDashboardService(store RecordStore, catalog *utils.Catalog, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{store: store, catalog: catalog, loc: loc, now: time.Now}
}

func (s *DashboardService) SetClock(now func() time.Time) { s.now = now }

func (s *DashboardService) Location() *time.Location { return s.loc }

func (s *DashboardService) Now() time.Time { return s.now().In(s.loc) }

type ViewOptions struct {
	ConfirmedOnly bool
}

type NutrientProgress struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Purpose    string  `json:"purpose"`
	Consumed   float64 `json:"consumed"`
	Goal       float64 `json:"goal"`
	Percent    float64 `json:"percent"`     // clamped to 0..1
	RawPercent float64 `json:"raw_percent"` // may exceed 1
}

type DayReport struct {
	Date        string             `json:"date"`
	Label       string             `json:"label"`
	RecordCount int                `json:"record_count"`
	Nutrients   []NutrientProgress `json:"nutrients"`
}

type HistoryDay struct {
	Label   string                `json:"label"`
	Date    string                `json:"date"`
	Records []models.IntakeRecord `json:"records"`
	Totals  map[string]float64    `json:"totals"`
}

type Contribution struct {
	RecordID   string    `json:"record_id"`
	Label      string    `json:"label"`
	CapturedAt time.Time `json:"captured_at"`
	Amount     float64   `json:"amount"`
	Confirmed  bool      `json:"confirmed"`
}

type NutrientDetail struct {
	Nutrient      models.NutrientDefinition `json:"nutrient"`
	Date          string                    `json:"date"`
	Label         string                    `json:"label"`
	Consumed      float64                   `json:"consumed"`
	Percent       float64                   `json:"percent"`
	RawPercent    float64                   `json:"raw_percent"`
	Contributions []Contribution            `json:"contributions"`
}

func (s *DashboardService) Today(ctx context.Context, ownerID string, opts ViewOptions) (*DayReport, error) {
	return s.Day(ctx, ownerID, s.Now(), opts)
}

// Day reports every catalog nutrient for the calendar day holding date.
func (s *DashboardService) Day(ctx context.Context, ownerID string, date time.Time, opts ViewOptions) (*DayReport, error) {
	start, recs, err := s.dayRecords(ctx, ownerID, date, opts)
	if err != nil {
		return nil, err
	}
	totals := utils.SumNutrients(recs, s.catalog)

	out := &DayReport{
		Date:        start.Format(utils.DateLayout),
		Label:       utils.DayLabel(start, s.Now()),
		RecordCount: len(recs),
		Nutrients:   make([]NutrientProgress, 0, s.catalog.Len()),
	}
	for _, d := range s.catalog.All() {
		out.Nutrients = append(out.Nutrients, progressFor(d, totals[d.Name]))
	}
	return out, nil
}

// History groups the owner's records in r by day, newest day first.
func (s *DashboardService) History(ctx context.Context, ownerID string, r TimeRange, opts ViewOptions) ([]HistoryDay, error) {
	recs, err := s.store.ListByOwner(ctx, ownerID, r)
	if err != nil {
		return nil, err
	}
	recs = filterRecords(recs, opts)

	groups := utils.GroupByDay(recs, s.Now(), ownerID)
	out := make([]HistoryDay, 0, len(groups))
	for _, g := range groups {
		out = append(out, HistoryDay{
			Label:   g.Label,
			Date:    g.Date.Format(utils.DateLayout),
			Records: g.Records,
			Totals:  utils.SumNutrients(g.Records, s.catalog),
		})
	}
	return out, nil
}

// NutrientDetail is the single-nutrient view. Unlike the card view it keeps
// RawPercent so overage can be shown.
func (s *DashboardService) NutrientDetail(ctx context.Context, ownerID, name string, date time.Time, opts ViewOptions) (*NutrientDetail, error) {
	def, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, ErrUnknownNutrient
	}
	start, recs, err := s.dayRecords(ctx, ownerID, date, opts)
	if err != nil {
		return nil, err
	}

	out := &NutrientDetail{
		Nutrient:      def,
		Date:          start.Format(utils.DateLayout),
		Label:         utils.DayLabel(start, s.Now()),
		Contributions: []Contribution{},
	}
	for _, r := range recs {
		amount, ok := r.Breakdown()[name]
		if !ok || amount == 0 {
			continue
		}
		out.Consumed += amount
		out.Contributions = append(out.Contributions, Contribution{
			RecordID:   r.ID,
			Label:      r.Label,
			CapturedAt: r.CapturedAt,
			Amount:     amount,
			Confirmed:  r.Confirmed,
		})
	}
	out.Percent = utils.ClampedProgress(out.Consumed, def.Target)
	out.RawPercent = utils.Progress(out.Consumed, def.Target)
	return out, nil
}

func (s *DashboardService) dayRecords(ctx context.Context, ownerID string, date time.Time, opts ViewOptions) (time.Time, []models.IntakeRecord, error) {
	start, end := utils.DayWindow(date, s.loc)
	recs, err := s.store.ListByOwner(ctx, ownerID, TimeRange{From: &start, To: &end})
	if err != nil {
		return start, nil, err
	}
	return start, filterRecords(recs, opts), nil
}

func progressFor(d models.NutrientDefinition, consumed float64) NutrientProgress {
	return NutrientProgress{
		Name:       d.Name,
		Unit:       d.Unit,
		Purpose:    d.Purpose,
		Consumed:   consumed,
		Goal:       d.Target,
		Percent:    utils.ClampedProgress(consumed, d.Target),
		RawPercent: utils.Progress(consumed, d.Target),
	}
}

func filterRecords(recs []models.IntakeRecord, opts ViewOptions) []models.IntakeRecord {
	if !opts.ConfirmedOnly {
		return recs
	}
	out := recs[:0:0]
	for _, r := range recs {
		if r.Confirmed {
			out = append(out, r)
		}
	}
	return out
}
