package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"nutrilog/utils"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultLabel  = "Meal"
	FallbackLabel = "Untitled Meal"
)

var ErrEstimationUnavailable = errors.New("estimation service unavailable")

// Estimate is the outcome of one vision call. Fallback is set when the reply
// could not be read; Amounts are then all zero and Label is FallbackLabel.
// Amounts always hold every catalog nutrient.
type Estimate struct {
	Label    string             `json:"name"`
	Amounts  map[string]float64 `json:"estimates"`
	Fallback bool               `json:"fallback"`
	Reason   string             `json:"reason,omitempty"`
}

// Estimator turns a photo into a nutrient estimate. An error means the
// service could not be reached; a malformed reply is a Fallback estimate.
type Estimator interface {
	Estimate(ctx context.Context, ownerID string, image []byte, contentType string) (Estimate, error)
}

type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type VisionEstimator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	catalog *utils.Catalog
	labeler Labeler
}

func NewVisionEstimator(cfg VisionConfig, catalog *utils.Catalog, labeler Labeler) (*VisionEstimator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	oc := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &VisionEstimator{
		client:  openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		catalog: catalog,
		labeler: labeler,
	}, nil
}

func (v *VisionEstimator) Estimate(ctx context.Context, ownerID string, image []byte, contentType string) (Estimate, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     v.model,
		MaxTokens: 1000,
		User:      ownerID,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: buildEstimatePrompt(v.catalog),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    utils.DataURI(image, contentType),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrEstimationUnavailable, err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	est := ParseEstimate(content, v.catalog)
	if est.Fallback {
		log.Printf("estimate fallback owner=%s: %s; raw=%s", ownerID, est.Reason, truncateText(content, 240))
		return est, nil
	}
	if est.Label == "" {
		est.Label = v.labelHint(ctx, image)
	}
	return est, nil
}

func (v *VisionEstimator) labelHint(ctx context.Context, image []byte) string {
	if v.labeler == nil {
		return DefaultLabel
	}
	labels, err := v.labeler.Labels(ctx, image)
	if err != nil {
		log.Printf("label hint failed: %v", err)
		return DefaultLabel
	}
	if len(labels) == 0 {
		return DefaultLabel
	}
	return labels[0]
}

func buildEstimatePrompt(catalog *utils.Catalog) string {
	var sb strings.Builder
	sb.WriteString("Based on this image, give the meal a short descriptive name and estimate the content of these nutrients. ")
	sb.WriteString("Return a JSON object with the name and estimated nutrient values:\n{\n")
	sb.WriteString(`  "name": "Example Meal Name",  // Short descriptive name of the meal` + "\n")
	for _, d := range catalog.All() {
		example := strconv.FormatFloat(d.Target/10, 'f', -1, 64)
		fmt.Fprintf(&sb, "  %q: %s,        // in %s\n", d.Name, example, d.Unit)
	}
	sb.WriteString("}")
	return sb.String()
}

// ParseEstimate reads a model reply. Missing or non-numeric nutrients become
// zero and unknown keys are ignored; a reply that is not a JSON object yields
// the fallback estimate. Label is left empty when the reply names nothing.
func ParseEstimate(content string, catalog *utils.Catalog) Estimate {
	payload := extractJSONPayload(content)
	var parsed map[string]any
	if payload == "" {
		return fallbackEstimate(catalog, "empty reply")
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return fallbackEstimate(catalog, "reply is not JSON: "+err.Error())
	}
	if parsed == nil {
		return fallbackEstimate(catalog, "reply is not a JSON object")
	}

	est := Estimate{Amounts: make(map[string]float64, catalog.Len())}
	if name, ok := parsed["name"].(string); ok {
		est.Label = strings.TrimSpace(name)
	}
	for _, n := range catalog.Names() {
		est.Amounts[n] = numberOrZero(parsed[n])
	}
	return est
}

func fallbackEstimate(catalog *utils.Catalog, reason string) Estimate {
	est := Estimate{
		Label:    FallbackLabel,
		Amounts:  make(map[string]float64, catalog.Len()),
		Fallback: true,
		Reason:   reason,
	}
	for _, n := range catalog.Names() {
		est.Amounts[n] = 0
	}
	return est
}

func numberOrZero(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func extractJSONPayload(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return trimmed[start : end+1]
	}
	return trimmed
}

func truncateText(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
