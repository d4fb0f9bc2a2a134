package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nutrilog/models"
	"nutrilog/utils"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image")

// ImageStore keeps the uploaded photos.
type ImageStore interface {
	PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type CaptureService struct {
	estimator Estimator
	images    ImageStore
	records   RecordStore
	now       func() time.Time
}

func NewCaptureService(estimator Estimator, images ImageStore, records RecordStore) *CaptureService {
	return &CaptureService{
		estimator: estimator,
		images:    images,
		records:   records,
		now:       time.Now,
	}
}

func (s *CaptureService) SetClock(now func() time.Time) { s.now = now }

type CaptureResult struct {
	ImageID   string               `json:"image_id"`
	Record    *models.IntakeRecord `json:"record"`
	Estimates map[string]float64   `json:"estimates"`
	Name      string               `json:"name"`
	Fallback  bool                 `json:"fallback"`
	Message   string               `json:"message"`
}

// Capture estimates a photo, uploads it and stores an unconfirmed record.
// A malformed estimate still produces a record (all zeros, fallback label);
// failures reaching the estimator, storage or the table are returned.
func (s *CaptureService) Capture(ctx context.Context, ownerID, imageBase64 string) (*CaptureResult, error) {
	if ownerID == "" {
		return nil, errors.New("owner is required")
	}
	img, contentType, err := utils.DecodeImage(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	est, err := s.estimator.Estimate(ctx, ownerID, img, contentType)
	if err != nil {
		if errors.Is(err, ErrEstimationUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrEstimationUnavailable, err)
	}
	if est.Fallback {
		log.Printf("capture owner=%s stored with fallback estimate (%s)", ownerID, est.Reason)
	}

	imageID := uuid.NewString()
	key := fmt.Sprintf("%s/%s%s", ownerID, imageID, utils.ImageExtension(contentType))
	url, err := s.images.PutImage(ctx, key, img, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	rec := &models.IntakeRecord{
		OwnerID:    ownerID,
		CapturedAt: s.now(),
		Label:      est.Label,
		ImageID:    imageID,
		ImageURL:   url,
	}
	rec.SetBreakdown(est.Amounts)
	if err := s.records.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save meal data: %w", err)
	}

	return &CaptureResult{
		ImageID:   imageID,
		Record:    rec,
		Estimates: est.Amounts,
		Name:      rec.Label,
		Fallback:  est.Fallback,
		Message:   "Nutrient content estimated and saved",
	}, nil
}
