package assets

import (
	"bytes"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/db47h/texquad"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode decodes an image from r. Animated GIFs are returned as a
// *texquad.Animation, other images as a texquad.Static. PNG, JPEG, GIF, BMP
// and WebP are supported.
//
func Decode(r io.Reader) (texquad.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if len(g.Image) > 1 {
			return texquad.NewAnimation(g), nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return texquad.Static{Image: img}, nil
}
