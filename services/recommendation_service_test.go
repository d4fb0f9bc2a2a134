package services

import (
	"context"
	"testing"
	"time"
)

func TestRecommendationsLowestProgressFirst(t *testing.T) {
	dash, records, now := newTestDashboard(t)
	mustInsert(t, records, "u1", now.Add(-time.Hour), map[string]float64{"Omega-3": 2, "Zinc": 5, "Magnesium": 40})

	recs, err := NewRecService(dash).GetRecs(context.Background(), "u1", ViewOptions{})
	if err != nil {
		t.Fatalf("GetRecs() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected met Omega-3 to be skipped, got %+v", recs)
	}
	if recs[0].Nutrient != "Magnesium" || recs[1].Nutrient != "Zinc" {
		t.Fatalf("expected [Magnesium Zinc], got [%s %s]", recs[0].Nutrient, recs[1].Nutrient)
	}
	if recs[0].Sources != "Spinach" || recs[0].Recommendations == "" {
		t.Fatalf("expected catalog text, got %+v", recs[0])
	}
}
