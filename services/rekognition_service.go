package services

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// Labeler names what is in a photo. Used only as a hint for the record label.
type Labeler interface {
	Labels(ctx context.Context, image []byte) ([]string, error)
}

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(ctx context.Context, region string) (*RekognitionService, error) {
	if region == "" {
		return nil, errors.New("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// Labels returns the top labels for the image, most confident first.
func (r *RekognitionService) Labels(ctx context.Context, image []byte) ([]string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil && *l.Name != "" {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
