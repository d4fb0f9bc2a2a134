package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestDecodeImageRawBase64(t *testing.T) {
	b, ct, err := DecodeImage(base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")))
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if string(b) != "jpeg-bytes" || ct != "image/jpeg" {
		t.Fatalf("unexpected result %q %q", b, ct)
	}
}

func TestDecodeImageDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	b, ct, err := DecodeImage(uri)
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if string(b) != "png" || ct != "image/png" {
		t.Fatalf("unexpected result %q %q", b, ct)
	}
	if ImageExtension(ct) != ".png" {
		t.Fatalf("expected .png extension, got %q", ImageExtension(ct))
	}
}

func TestDecodeImageRejects(t *testing.T) {
	if _, _, err := DecodeImage("  "); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if _, _, err := DecodeImage("data:text/plain;base64,aGk="); err == nil {
		t.Fatalf("expected non-image content type to fail")
	}
	if _, _, err := DecodeImage("not base64 !!"); err == nil {
		t.Fatalf("expected invalid base64 to fail")
	}
	big := strings.Repeat("A", (MaxImageBytes/3+8)*4)
	if _, _, err := DecodeImage(big); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	uri := DataURI([]byte("x"), "")
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data URI %q", uri)
	}
	b, _, err := DecodeImage(uri)
	if err != nil || string(b) != "x" {
		t.Fatalf("round trip failed: %q %v", b, err)
	}
}
