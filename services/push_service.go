package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"nutrilog/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(ctx context.Context, db *gorm.DB, region, fcmPlatformArn string) (*PushService, error) {
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: fcmPlatformArn,
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

func (p *PushService) RegisterDevice(ctx context.Context, ownerID, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		OwnerID:     ownerID,
		Platform:    strings.ToLower(platform),
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}
	var existing models.UserDevice
	if err := p.db.WithContext(ctx).Where("owner_id = ? AND token_hash = ?", ownerID, dev.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		existing.UpdatedAt = time.Now()
		if err := p.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err := p.db.WithContext(ctx).Create(dev).Error; err != nil {
		return nil, err
	}
	return dev, nil
}

// SetEnabled toggles push for every device of ownerID.
func (p *PushService) SetEnabled(ctx context.Context, ownerID string, enabled bool) error {
	return SetNotificationsEnabled(ctx, p.db, ownerID, enabled)
}

func SetNotificationsEnabled(ctx context.Context, db *gorm.DB, ownerID string, enabled bool) error {
	return db.WithContext(ctx).
		Model(&models.UserDevice{}).
		Where("owner_id = ?", ownerID).
		Update("enabled", enabled).Error
}

const pushTimeout = 10 * time.Second

// PushToUser publishes to every enabled device of ownerID. Errors are logged.
func (p *PushService) PushToUser(ownerID, title, body string, data map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	var endpoints []models.UserDevice
	if err := p.db.WithContext(ctx).Where("owner_id = ? AND enabled = ?", ownerID, true).Find(&endpoints).Error; err != nil {
		log.Printf("push: load devices for %s: %v", ownerID, err)
		return
	}
	if len(endpoints) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
		"data": data,
	})
	// SNS wants each platform payload as an escaped JSON string.
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})
	for _, d := range endpoints {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			log.Printf("push: publish to %s: %v", d.EndpointARN, err)
		}
	}
}
