package wheel

import "math"

const (
	// SliceAngle is the angular span of one segment.
	SliceAngle = 2 * math.Pi / NumSegments
	halfSlice  = SliceAngle / 2

	offstageRadius = 20
)

type Point struct {
	X float64
	Y float64
}

// Pose is the center and outer radius of the wheel on the canvas.
type Pose struct {
	Center Point
	Radius float64
}

// PoseFor maps a placement onto a concrete pose for a canvas of the given size.
func PoseFor(p Placement, width, height float64) Pose {
	switch p {
	case Offstage:
		return Pose{Center: Point{X: height / -3, Y: height}, Radius: offstageRadius}
	case CenterStage:
		return Pose{Center: Point{X: width / 2, Y: height}, Radius: height}
	case StageLeft:
		return Pose{Center: Point{X: width / 4, Y: height / 2}, Radius: height * 0.45}
	default:
		return Pose{Center: Point{X: width / 2, Y: height / 2}, Radius: height * 0.45}
	}
}

// BaseAngleForSection returns the rotation that centers section at the top of the
// wheel. The result is in [0, 2π).
func BaseAngleForSection(section int) float64 {
	section = WrapSection(section)
	return math.Mod(float64(27-2*section)*halfSlice, 2*math.Pi)
}

// SegmentAngle returns the angle of the (possibly fractional) segment boundary i.
func SegmentAngle(baseAngle, i float64) float64 {
	return baseAngle + SliceAngle*i
}

func pointAt(center Point, distance, angle float64) Point {
	return Point{
		X: center.X + distance*math.Cos(angle),
		Y: center.Y + distance*math.Sin(angle),
	}
}
