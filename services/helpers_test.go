package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"nutrilog/config"
	"nutrilog/models"
	"nutrilog/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testZone = time.FixedZone("UTC+2", 2*3600)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrilog.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestCatalog(t *testing.T) *utils.Catalog {
	t.Helper()
	c, err := utils.NewCatalog([]models.NutrientDefinition{
		{Name: "Omega-3", Target: 2, Unit: "g", Sources: "Fatty fish", Recommendations: "Eat salmon twice a week"},
		{Name: "Magnesium", Target: 400, Unit: "mg", Sources: "Spinach", Recommendations: "Add leafy greens"},
		{Name: "Zinc", Target: 10, Unit: "mg", Sources: "Pumpkin seeds", Recommendations: "Snack on seeds"},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

type recordedEvents struct {
	mu     sync.Mutex
	events []RecordEvent
	pushes []string
}

func (r *recordedEvents) Broadcast(ownerID string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := payload.(RecordEvent); ok {
		r.events = append(r.events, ev)
	}
}

func (r *recordedEvents) PushToUser(ownerID, title, body string, data map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, title)
}

func (r *recordedEvents) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func mustInsert(t *testing.T, s *RecordService, owner string, at time.Time, amounts map[string]float64) *models.IntakeRecord {
	t.Helper()
	r := &models.IntakeRecord{OwnerID: owner, CapturedAt: at}
	r.SetBreakdown(amounts)
	if err := s.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return r
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
