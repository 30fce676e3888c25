package canvas

import (
	"fmt"
	"image"
	"strings"
)

// Anchor placement of the fitted image on the canvas
type Anchor int

const (
	Center Anchor = iota
	TopLeft
	Top
	TopRight
	Left
	Right
	BottomLeft
	Bottom
	BottomRight
)

var anchorNames = map[string]Anchor{
	"center":       Center,
	"top-left":     TopLeft,
	"top":          Top,
	"top-right":    TopRight,
	"left":         Left,
	"right":        Right,
	"bottom-left":  BottomLeft,
	"bottom":       Bottom,
	"bottom-right": BottomRight,
}

// ParseAnchor parses an anchor name such as "center" or "bottom-right"
func ParseAnchor(s string) (Anchor, error) {
	if a, ok := anchorNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return Center, fmt.Errorf("unknown anchor %q", s)
}

func (a Anchor) String() string {
	for name, anchor := range anchorNames {
		if anchor == a {
			return name
		}
	}
	return "center"
}

// point returns the paste position for content of size w x h on a square
// canvas of the given size
func (a Anchor) point(size, w, h int) image.Point {
	cx := (size - w) / 2
	cy := (size - h) / 2
	switch a {
	case TopLeft:
		return image.Pt(0, 0)
	case Top:
		return image.Pt(cx, 0)
	case TopRight:
		return image.Pt(size-w, 0)
	case Left:
		return image.Pt(0, cy)
	case Right:
		return image.Pt(size-w, cy)
	case BottomLeft:
		return image.Pt(0, size-h)
	case Bottom:
		return image.Pt(cx, size-h)
	case BottomRight:
		return image.Pt(size-w, size-h)
	default:
		return image.Pt(cx, cy)
	}
}
