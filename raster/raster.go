// Package raster holds the image assets of a document. Assets are kept as
// the bytes read from the container; they are only decoded to validate them
// and to scale previews.
package raster

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	"gitlab.com/tozd/go/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnreadable is returned for data no registered decoder accepts.
var ErrUnreadable = errors.New("unreadable raster data")

// Image is an opaque raster asset.
type Image struct {
	Data   []byte
	Format string // "png", "jpeg", ...
	Width  int
	Height int
}

// Decode validates data and records its format and size. The returned
// Image shares data.
func Decode(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnreadable, err.Error())
	}
	return &Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Blank returns an opaque white PNG of the given size.
func Blank(w, h int) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	out, err := encode(img)
	if err != nil {
		// Encoding an in-memory RGBA image does not fail.
		panic(err)
	}
	return out
}

// Thumbnail returns src scaled down so neither side exceeds maxSide,
// keeping the aspect ratio, as a PNG. A PNG that already fits is returned
// unchanged.
func Thumbnail(src *Image, maxSide int) (*Image, error) {
	if src.Format == "png" && src.Width <= maxSide && src.Height <= maxSide {
		return src, nil
	}
	img, _, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnreadable, err.Error())
	}
	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), maxSide)
	if w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}
	return encode(img)
}

func fit(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}

func encode(img image.Image) (*Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.WithStack(err)
	}
	b := img.Bounds()
	return &Image{Data: buf.Bytes(), Format: "png", Width: b.Dx(), Height: b.Dy()}, nil
}
