// Package imaging decodes uploaded images, resizes them to fit within
// bounding dimensions, and re-encodes them as JPEG. Product photos are
// normalised to 800x600 and profile photos to 400x400 before storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	"golang.org/x/image/draw"

	// register decoders
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	ProductMaxWidth  = 800
	ProductMaxHeight = 600
	ProfileMaxWidth  = 400
	ProfileMaxHeight = 400

	DefaultQuality  = 85
	EnhancedQuality = 90
)

// allowedExtensions mirrors the upload whitelist.
var allowedExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
}

// AllowedExtension reports whether ext (without dot, any case) may be uploaded.
func AllowedExtension(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// Fit decodes src, scales it down to fit within maxW x maxH preserving
// aspect ratio, and returns a JPEG at the given quality. Images already
// within bounds are re-encoded without scaling. Transparency is flattened
// onto white since JPEG has no alpha channel.
func Fit(src []byte, maxW, maxH, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxW || h > maxH {
		scale := float64(maxW) / float64(w)
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
		nw, nh := int(float64(w)*scale), int(float64(h)*scale)
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	flattened := flatten(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// FitProduct normalises a product photo.
func FitProduct(src []byte) ([]byte, error) {
	return Fit(src, ProductMaxWidth, ProductMaxHeight, DefaultQuality)
}

// FitProfile normalises a profile photo.
func FitProfile(src []byte) ([]byte, error) {
	return Fit(src, ProfileMaxWidth, ProfileMaxHeight, DefaultQuality)
}

// flatten composites img onto a white background.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}
