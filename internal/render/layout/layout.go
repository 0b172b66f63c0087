// Package layout has the rectangle arithmetic the overlay painter boxes
// nodes with.
package layout

import "image"

// Inset shrinks rect by px on all sides. A negative px grows it, which is how
// focus rings and borders are drawn around a node. Shrinking never inverts the
// rectangle; it collapses onto the center instead.
func Inset(rect image.Rectangle, px int) image.Rectangle {
	rect = rect.Canon()
	if px == 0 {
		return rect
	}
	if px > 0 {
		if limit := rect.Dx() / 2; px > limit {
			px = limit
		}
		if limit := rect.Dy() / 2; px > limit {
			rect.Min.Y += limit
			rect.Max.Y -= limit
			rect.Min.X += px
			rect.Max.X -= px
			return rect
		}
	}
	return image.Rect(rect.Min.X+px, rect.Min.Y+px, rect.Max.X-px, rect.Max.Y-px)
}

// SplitVertical cuts rect into a left column of leftWidth and the rest.
func SplitVertical(rect image.Rectangle, leftWidth int) (left, right image.Rectangle) {
	rect = rect.Canon()
	leftWidth = clamp(leftWidth, 0, rect.Dx())
	x := rect.Min.X + leftWidth
	return image.Rect(rect.Min.X, rect.Min.Y, x, rect.Max.Y), image.Rect(x, rect.Min.Y, rect.Max.X, rect.Max.Y)
}

// FitSquare returns the largest square centered in rect.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	size := min(rect.Dx(), rect.Dy())
	return CenterIn(rect, size, size)
}

// CenterIn returns a width x height box centered in rect. Content larger than
// rect keeps its size and starts at rect's top-left corner.
func CenterIn(rect image.Rectangle, width, height int) image.Rectangle {
	rect = rect.Canon()
	x := rect.Min.X + max(0, rect.Dx()-width)/2
	y := rect.Min.Y + max(0, rect.Dy()-height)/2
	return image.Rect(x, y, x+width, y+height)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
