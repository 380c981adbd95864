package utils

import (
	"bytes"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// RenderWatermark draws the message onto the image and returns PNG bytes.
func RenderWatermark(src image.Image, message string) ([]byte, error) {
	dc := gg.NewContextForImage(src)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(message, 10, 20)

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
