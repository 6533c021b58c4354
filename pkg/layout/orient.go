// orient.go — Grid orientation from source image shapes.
package layout

import "image"

// SelectMainGrid picks the 6-cell grid orientation for a set of product
// images from their average aspect ratio: predominantly portrait or square
// sources (avg width/height at or below 1) get 2 rows of 3, predominantly
// landscape sources get 3 rows of 2. Zero-height images are ignored; with no
// measurable image the portrait orientation is returned.
func SelectMainGrid(images []*image.NRGBA) (rows, cols int) {
	var sum float64
	var n int
	for _, img := range images {
		if img == nil || img.Bounds().Dy() < 1 {
			continue
		}
		sum += float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
		n++
	}

	if n > 0 && sum/float64(n) > 1 {
		return 3, 2
	}
	return 2, 3
}
