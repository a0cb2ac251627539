package compose

import (
	"bytes"
	"encoding/base64"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/thumbkit/pkg/color"
	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// backgroundNode decodes raw image bytes, crops them to cover the canvas
// and returns a full-bleed image node with a PNG data URI.
func backgroundNode(data []byte, width, height float64) (*scene.Node, error) {
	uri, err := CoverDataURI(data, int(width), int(height))
	if err != nil {
		return nil, err
	}
	return &scene.Node{
		Kind:   scene.KindImage,
		Name:   scene.NameBackground,
		Width:  width,
		Height: height,
		Image:  &scene.Image{URL: uri, Fallback: color.Placeholder},
	}, nil
}

// CoverDataURI decodes an image, scales and centre-crops it to exactly
// w x h, and encodes the result as a PNG data URI.
func CoverDataURI(data []byte, w, h int) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidImage, err, "compose: decode background image")
	}
	if w <= 0 || h <= 0 {
		return "", errors.New(errors.ErrCodeInvalidImage, "compose: canvas has no area")
	}
	img = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "compose: encode background image")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
