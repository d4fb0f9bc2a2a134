package services

import (
	"context"
	"errors"
	"time"

	"nutrilog/models"

	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

// TimeRange bounds a query to [From, To). Nil ends are open.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// RecordStore is the owner-scoped view of the intake table that the
// aggregation side reads from.
type RecordStore interface {
	ListByOwner(ctx context.Context, ownerID string, r TimeRange) ([]models.IntakeRecord, error)
	Get(ctx context.Context, ownerID, id string) (*models.IntakeRecord, error)
	Insert(ctx context.Context, rec *models.IntakeRecord) error
	Confirm(ctx context.Context, ownerID, id string) (*models.IntakeRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type RecordService struct {
	db     *gorm.DB
	events *EventBus
}

func NewRecordService(db *gorm.DB, events *EventBus) *RecordService {
	return &RecordService{db: db, events: events}
}

// ListByOwner returns records newest first.
func (s *RecordService) ListByOwner(ctx context.Context, ownerID string, r TimeRange) ([]models.IntakeRecord, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if r.From != nil {
		q = q.Where("captured_at >= ?", r.From.UTC())
	}
	if r.To != nil {
		q = q.Where("captured_at < ?", r.To.UTC())
	}

	var recs []models.IntakeRecord
	if err := q.Order("captured_at DESC").Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *RecordService) Get(ctx context.Context, ownerID, id string) (*models.IntakeRecord, error) {
	var rec models.IntakeRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Insert stores a new, unconfirmed record.
func (s *RecordService) Insert(ctx context.Context, rec *models.IntakeRecord) error {
	if rec.OwnerID == "" {
		return errors.New("record owner is required")
	}
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = time.Now()
	}
	rec.CapturedAt = rec.CapturedAt.UTC()
	if rec.Label == "" {
		rec.Label = DefaultLabel
	}
	rec.Confirmed = false

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	s.events.RecordChanged(rec.OwnerID, EventRecordCreated, rec)
	return nil
}

// Confirm marks a record as accepted. Confirming twice is a no-op.
func (s *RecordService) Confirm(ctx context.Context, ownerID, id string) (*models.IntakeRecord, error) {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if rec.Confirmed {
		return rec, nil
	}
	if err := s.db.WithContext(ctx).
		Model(rec).
		Update("confirmed", true).Error; err != nil {
		return nil, err
	}
	rec.Confirmed = true
	s.events.RecordChanged(ownerID, EventRecordConfirmed, rec)
	return rec, nil
}

func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.IntakeRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	s.events.RecordChanged(ownerID, EventRecordDeleted, rec)
	return nil
}
