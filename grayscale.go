package grayzip

import (
	"image"
)

// Grayscale converts the image to grayscale mode by averaging the red, green
// and blue channels of each pixel. The average is truncated and the alpha
// channel is copied over unchanged.
func (p *Processor) Grayscale(src *image.NRGBA) *image.NRGBA {
	var (
		bounds = src.Bounds()
		dst    = image.NewNRGBA(bounds)
		dx     = bounds.Dx()
		dy     = bounds.Dy()
	)

	for y := 0; y < dy; y++ {
		si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		di := dst.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < dx; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			gray := uint8((uint16(s[0]) + uint16(s[1]) + uint16(s[2])) / 3)
			d[0], d[1], d[2], d[3] = gray, gray, gray, s[3]

			si += 4
			di += 4
		}
	}
	return dst
}
