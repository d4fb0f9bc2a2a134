package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntakeRecord is one logged photo. The nutrient breakdown is written once
// when the estimate lands and is never recomputed afterwards.
type IntakeRecord struct {
	ID              string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID         string            `gorm:"type:varchar(36);index:idx_owner_captured,priority:1;not null" json:"owner_id"`
	CapturedAt      time.Time         `gorm:"index:idx_owner_captured,priority:2;not null" json:"captured_at"`
	NutrientContent datatypes.JSONMap `json:"nutrient_content"`
	Label           string            `json:"label"`
	Confirmed       bool              `gorm:"default:false;not null" json:"confirmed"`
	ImageID         string            `gorm:"type:varchar(36)" json:"image_id,omitempty"`
	ImageURL        string            `json:"image_url,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (r *IntakeRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return
}

// Breakdown returns the stored nutrient amounts as numbers. Values that are
// not numeric, not finite or negative are left out rather than guessed at.
func (r IntakeRecord) Breakdown() map[string]float64 {
	out := make(map[string]float64, len(r.NutrientContent))
	for name, raw := range r.NutrientContent {
		v, ok := toAmount(raw)
		if !ok {
			continue
		}
		out[name] = v
	}
	return out
}

// SetBreakdown stores amounts as the JSON column value.
func (r *IntakeRecord) SetBreakdown(amounts map[string]float64) {
	m := make(datatypes.JSONMap, len(amounts))
	for k, v := range amounts {
		m[k] = v
	}
	r.NutrientContent = m
}

func toAmount(raw interface{}) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
