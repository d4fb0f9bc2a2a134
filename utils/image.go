package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

const MaxImageBytes = 10 << 20

var (
	ErrEmptyImage    = errors.New("image is required")
	ErrImageTooLarge = errors.New("image exceeds 10 MiB")
)

// DecodeImage accepts raw base64 or a "data:<mime>;base64,<data>" URI and
// returns the bytes with their content type (image/jpeg when unspecified).
func DecodeImage(encoded string) ([]byte, string, error) {
	data := strings.TrimSpace(encoded)
	if data == "" {
		return nil, "", ErrEmptyImage
	}
	contentType := "image/jpeg"
	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("invalid data URI")
		}
		meta := strings.TrimPrefix(parts[0], "data:") // "image/png;base64"
		if ct := strings.SplitN(meta, ";", 2)[0]; ct != "" {
			contentType = strings.ToLower(ct)
		}
		data = parts[1]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("unsupported content type %q", contentType)
	}
	if base64.StdEncoding.DecodedLen(len(data)) > MaxImageBytes+3 {
		return nil, "", ErrImageTooLarge
	}

	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode image: %w", err)
		}
	}
	if len(b) == 0 {
		return nil, "", ErrEmptyImage
	}
	if len(b) > MaxImageBytes {
		return nil, "", ErrImageTooLarge
	}
	return b, contentType, nil
}

// ImageExtension picks a file extension for contentType.
func ImageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		return "." + parts[1]
	}
	return ".jpg"
}

// DataURI re-encodes image bytes for APIs that take inline images.
func DataURI(b []byte, contentType string) string {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(b)
}
