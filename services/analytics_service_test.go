package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAnalyticsSummaryMissingDays(t *testing.T) {
	ctx := context.Background()
	records := NewRecordService(newTestDB(t), nil)
	svc := NewAnalyticsService(records, newTestCatalog(t), testZone)

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, testZone)
	to := time.Date(2026, 10, 3, 0, 0, 0, 0, testZone)
	mustInsert(t, records, "u1", from.Add(9*time.Hour), map[string]float64{"Zinc": 10})
	mustInsert(t, records, "u1", to.Add(20*time.Hour), map[string]float64{"Zinc": 5})
	mustInsert(t, records, "u1", to.AddDate(0, 0, 1).Add(time.Hour), map[string]float64{"Zinc": 100})

	got, err := svc.Summary(ctx, "u1", from, to, false)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Metadata.DaysCounted != 2 || got.Metadata.RecordsCounted != 2 {
		t.Fatalf("unexpected metadata %+v", got.Metadata)
	}
	zinc := got.Nutrients["Zinc"]
	if zinc.AvgConsumed != 7.5 || zinc.AvgPercent != 75 || zinc.AvgGoal != 10 {
		t.Fatalf("unexpected zinc average %+v", zinc)
	}

	got, err = svc.Summary(ctx, "u1", from, to, true)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Metadata.DaysCounted != 3 || got.Nutrients["Zinc"].AvgConsumed != 5 {
		t.Fatalf("expected zero days to count, got %+v", got)
	}

	if _, err := svc.Summary(ctx, "u1", to, from, false); err == nil {
		t.Fatalf("expected reversed range to fail")
	}
}

func TestAnalyticsSummaryRangeCap(t *testing.T) {
	ctx := context.Background()
	svc := NewAnalyticsService(NewRecordService(newTestDB(t), nil), newTestCatalog(t), testZone)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, testZone)
	got, err := svc.Summary(ctx, "u1", from, from.AddDate(0, 0, MaxSummaryDays-1), true)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Metadata.DaysCounted != MaxSummaryDays {
		t.Fatalf("expected %d days, got %d", MaxSummaryDays, got.Metadata.DaysCounted)
	}

	far := time.Date(9999, 12, 31, 0, 0, 0, 0, testZone)
	if _, err := svc.Summary(ctx, "u1", time.Date(1, 1, 1, 0, 0, 0, 0, testZone), far, true); !errors.Is(err, ErrRangeTooLong) {
		t.Fatalf("expected ErrRangeTooLong, got %v", err)
	}
}

func TestAnalyticsWeeklyOverview(t *testing.T) {
	ctx := context.Background()
	records := NewRecordService(newTestDB(t), nil)
	svc := NewAnalyticsService(records, newTestCatalog(t), testZone)

	thursday := time.Date(2026, 10, 15, 10, 0, 0, 0, testZone)
	mustInsert(t, records, "u1", thursday, map[string]float64{"Omega-3": 3})

	out, err := svc.WeeklyOverview(ctx, "u1", thursday, "chart")
	if err != nil {
		t.Fatalf("WeeklyOverview() error = %v", err)
	}
	if out.WeekStart != "2026-10-12" {
		t.Fatalf("expected week to start Monday 2026-10-12, got %s", out.WeekStart)
	}
	days, ok := out.Days.([]DayChart)
	if !ok || len(days) != 7 {
		t.Fatalf("expected 7 chart days, got %#v", out.Days)
	}
	if days[3].Percentages["Omega-3"] != 150 || days[0].Percentages["Omega-3"] != 0 {
		t.Fatalf("unexpected percentages %v / %v", days[3].Percentages, days[0].Percentages)
	}

	if _, err := svc.WeeklyOverview(ctx, "u1", thursday, "pie"); err == nil {
		t.Fatalf("expected unknown mode to fail")
	}
}
