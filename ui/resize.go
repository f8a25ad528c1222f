package ui

import "image"

// Scale magnifies source by an integer factor, nearest neighbour.
func Scale(source *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return source
	}
	bounds := source.Bounds()
	tw := bounds.Dx() * factor
	th := bounds.Dy() * factor
	target := image.NewRGBA(image.Rect(0, 0, tw, th))
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			target.SetRGBA(x, y, source.RGBAAt(x/factor, y/factor))
		}
	}
	return target
}
