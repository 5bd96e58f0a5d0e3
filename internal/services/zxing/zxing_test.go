package zxing_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"qrpayload/internal/services"
	"qrpayload/internal/services/zxing"
	"qrpayload/internal/testsupport"
)

func TestExtractReadsEncodedSymbol(t *testing.T) {
	payloads := []string{
		"hello world",
		"01001000 01101001",
		"SGVsbG8=",
	}
	reader := zxing.New()
	for _, want := range payloads {
		img := testsupport.QRImage(t, want)
		got, err := reader.Extract(context.Background(), img)
		if err != nil {
			t.Fatalf("Extract(%q): %v", want, err)
		}
		if got != want {
			t.Fatalf("Extract = %q, want %q", got, want)
		}
	}
}

func TestExtractBlankImageIsNotFound(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	_, err := zxing.New(zxing.WithTryHarder(false)).Extract(context.Background(), img)
	if !errors.Is(err, services.ErrQRNotFound) {
		t.Fatalf("expected ErrQRNotFound, got %v", err)
	}
}

func TestExtractHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := zxing.New().Extract(ctx, testsupport.QRImage(t, "x"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractNilImage(t *testing.T) {
	_, err := zxing.New().Extract(context.Background(), nil)
	if !errors.Is(err, services.ErrImageRead) {
		t.Fatalf("expected ErrImageRead, got %v", err)
	}
}
