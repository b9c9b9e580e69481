package preparer

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// maximum distance into image to look for EXIF tags
const maxExifSize = 1 << 20

type orientation struct {
	rotation       int
	flipHorizontal bool
	flipVertical   bool
}

func (o *orientation) none() bool {
	return o.rotation == 0 && !o.flipHorizontal && !o.flipVertical
}

// reorient rotates the decoded pixels to match the EXIF Orientation tag so
// that the resize path never ships a sideways image. The pass-through path
// keeps the original bytes and is not affected.
func reorient(img image.Image, r io.Reader) image.Image {
	o := computeExifOrientation(r)
	if o == nil || o.none() {
		return img
	}

	switch o.rotation {
	case 90:
		img = imaging.Rotate90(img)
	case 180:
		img = imaging.Rotate180(img)
	case -90:
		img = imaging.Rotate270(img)
	}

	if o.flipHorizontal {
		img = imaging.FlipH(img)
	}

	if o.flipVertical {
		img = imaging.FlipV(img)
	}

	return img
}

func computeExifOrientation(r io.Reader) *orientation {
	// Exif Orientation Tag values
	// http://sylvana.net/jpegcrop/exif_orientation.html
	const (
		topLeftSide     = 1
		topRightSide    = 2
		bottomRightSide = 3
		bottomLeftSide  = 4
		leftSideTop     = 5
		rightSideTop    = 6
		rightSideBottom = 7
		leftSideBottom  = 8
	)

	exf, err := exif.Decode(r)
	if err != nil {
		return nil
	}

	tag, err := exf.Get(exif.Orientation)
	if err != nil {
		return nil
	}

	orient, err := tag.Int(0)
	if err != nil {
		return nil
	}

	var o orientation
	switch orient {
	case topLeftSide:
		// skip
	case topRightSide:
		o.flipHorizontal = true
	case bottomRightSide:
		o.rotation = 180
	case bottomLeftSide:
		o.flipVertical = true
	case leftSideTop:
		o.rotation = -90
		o.flipVertical = true
	case rightSideTop:
		o.rotation = -90
	case rightSideBottom:
		o.rotation = 90
		o.flipVertical = true
	case leftSideBottom:
		o.rotation = 90
	}

	return &o
}

func sourceFormatCarriesExif(f string) bool {
	return f == "jpeg" || f == "tiff"
}
