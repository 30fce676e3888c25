// Package canvas fits a source image onto a fixed square canvas and
// composites the raster logo at a fixed offset from the bottom-right corner.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Options for fitting a source image onto the canvas
type Options struct {
	// Size square canvas dimension in pixels
	Size int

	// Background canvas fill color behind the fitted image
	Background color.NRGBA

	// Anchor placement of the fitted image on the canvas
	Anchor Anchor
}

// Fit scales src by a single uniform factor min(Size/w, Size/h), preserving
// aspect ratio within rounding, and pastes it at the configured anchor onto
// a Size x Size canvas of the background color.
func Fit(src image.Image, opts Options) *image.NRGBA {
	size := opts.Size
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := imaging.New(size, size, opts.Background)
	if w <= 0 || h <= 0 {
		return dst
	}
	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if nw > size {
		nw = size
	}
	if nh > size {
		nh = size
	}
	scaled := imaging.Resize(src, nw, nh, imaging.Lanczos)
	return imaging.Paste(dst, scaled, opts.Anchor.point(size, nw, nh))
}

// Stamp alpha-composites the logo over base so that its right edge is margin
// pixels from the canvas right edge and its bottom edge is margin pixels
// from the canvas bottom edge.
func Stamp(base *image.NRGBA, logo image.Image, margin int) *image.NRGBA {
	bb := base.Bounds()
	lb := logo.Bounds()
	x := bb.Dx() - lb.Dx() - margin
	y := bb.Dy() - lb.Dy() - margin
	// keep the logo inside canvas bounds even for tiny canvases
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return imaging.Overlay(base, logo, image.Pt(x, y), 1.0)
}
