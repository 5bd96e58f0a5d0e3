// Package imagefile loads raster images for QR extraction. PNG, JPEG and GIF
// come from the standard library decoders; BMP (the uncompressed pixel-array
// container many scanners emit) is registered from golang.org/x/image.
package imagefile

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"

	"qrpayload/internal/services"
)

// Load opens path and decodes it as an image. The file handle is released
// before returning. Every failure matches services.ErrImageRead.
func Load(path string) (image.Image, string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, "", services.Wrap(services.ErrImageRead, "extract", "open", "input path is empty", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		msg := "open input image"
		if errors.Is(err, fs.ErrNotExist) {
			msg = fmt.Sprintf("input image %s does not exist", path)
		}
		return nil, "", services.Wrap(services.ErrImageRead, "extract", "open", msg, err)
	}
	defer file.Close()

	img, format, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, "", services.Wrap(services.ErrImageRead, "extract", "decode", fmt.Sprintf("decode %s", path), err)
	}
	return img, format, nil
}
