package services

import (
	"context"
	"sort"
)

type Recommendation struct {
	Nutrient        string  `json:"nutrient"`
	Unit            string  `json:"unit"`
	Consumed        float64 `json:"consumed"`
	Goal            float64 `json:"goal"`
	Percent         float64 `json:"percent"`
	Sources         string  `json:"sources"`
	Recommendations string  `json:"recommendations"`
}

// RecService suggests foods for nutrients still under target today.
type RecService struct {
	dash *DashboardService
}

func NewRecService(dash *DashboardService) *RecService {
	return &RecService{dash: dash}
}

// GetRecs lists unmet nutrients, lowest progress first.
func (r *RecService) GetRecs(ctx context.Context, ownerID string, opts ViewOptions) ([]Recommendation, error) {
	day, err := r.dash.Today(ctx, ownerID, opts)
	if err != nil {
		return nil, err
	}

	recs := []Recommendation{}
	for _, p := range day.Nutrients {
		if p.Percent >= 1 {
			continue
		}
		def, _ := r.dash.catalog.Lookup(p.Name)
		recs = append(recs, Recommendation{
			Nutrient:        p.Name,
			Unit:            p.Unit,
			Consumed:        p.Consumed,
			Goal:            p.Goal,
			Percent:         p.Percent,
			Sources:         def.Sources,
			Recommendations: def.Recommendations,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Percent < recs[j].Percent })
	return recs, nil
}
