package zxing

import (
	"context"
	"errors"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"qrpayload/internal/services"
)

// Extractor is the collaborator contract the pipeline consumes: it turns an
// image into the decoded text of the single QR symbol it contains.
type Extractor interface {
	Extract(ctx context.Context, img image.Image) (string, error)
}

// Option customizes the zxing reader.
type Option func(*Reader)

// WithTryHarder trades speed for accuracy on skewed or noisy scans.
func WithTryHarder(enabled bool) Option {
	return func(r *Reader) {
		r.tryHarder = enabled
	}
}

// WithCharacterSet overrides the charset used for byte-mode segments.
func WithCharacterSet(charset string) Option {
	return func(r *Reader) {
		r.charset = charset
	}
}

// Reader extracts QR payloads with gozxing.
type Reader struct {
	tryHarder bool
	charset   string
}

var _ Extractor = (*Reader)(nil)

// New constructs a Reader.
func New(opts ...Option) *Reader {
	r := &Reader{tryHarder: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extract returns the text of the QR symbol in img. An image without a
// decodable symbol yields an error matching services.ErrQRNotFound.
func (r *Reader) Extract(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", services.Wrap(services.ErrImageRead, "extract", "scan", "no image supplied", nil)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", services.Wrap(services.ErrImageRead, "extract", "binarize", "", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, r.hints())
	if err != nil {
		msg := "image contains no decodable qr symbol"
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			msg = "no qr symbol located in image"
		}
		return "", services.Wrap(services.ErrQRNotFound, "extract", "scan", msg, err)
	}
	return result.GetText(), nil
}

func (r *Reader) hints() map[gozxing.DecodeHintType]interface{} {
	hints := make(map[gozxing.DecodeHintType]interface{}, 2)
	if r.tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	if r.charset != "" {
		hints[gozxing.DecodeHintType_CHARACTER_SET] = r.charset
	}
	return hints
}
