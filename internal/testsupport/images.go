package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

const qrSize = 240

// QRImage renders text as a QR symbol with a quiet zone.
func QRImage(t testing.TB, text string) image.Image {
	t.Helper()

	hints := map[gozxing.EncodeHintType]interface{}{}
	if !isASCII(text) && utf8.ValidString(text) {
		hints[gozxing.EncodeHintType_CHARACTER_SET] = "UTF-8"
	}
	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, qrSize, qrSize, hints)
	if err != nil {
		t.Fatalf("encode qr %q: %v", text, err)
	}
	return matrix
}

// WriteQRImage renders text as a QR symbol and saves it as PNG at path.
func WriteQRImage(t testing.TB, path, text string) string {
	t.Helper()
	writePNG(t, path, QRImage(t, text))
	return path
}

// WriteBlankImage saves a solid white PNG that contains no symbol.
func WriteBlankImage(t testing.TB, path string) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Gray{Y: 0})
	writePNG(t, path, img)
	return path
}

// WriteFile writes raw bytes to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func writePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
