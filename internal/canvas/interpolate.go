package canvas

import (
	"math"

	"github.com/rook-computer/lifewheel/internal/wheel"
)

// Speed selects how quickly the displayed wheel eases toward its target.
type Speed int

const (
	Medium Speed = iota
	Fast
	Slow
)

// Per-millisecond decay of the remaining distance to the target.
const (
	decayFast   = 0.9985
	decayMedium = 0.99985
	decaySlow   = 0.999985

	// settleThreshold is the residual below which a field snaps onto its target.
	settleThreshold = 0.01
)

var speedNames = map[Speed]string{Fast: "fast", Medium: "medium", Slow: "slow"}

func (s Speed) String() string {
	if name, ok := speedNames[s]; ok {
		return name
	}
	return "medium"
}

// Decay returns the per-millisecond decay constant of s.
func (s Speed) Decay() float64 {
	switch s {
	case Fast:
		return decayFast
	case Slow:
		return decaySlow
	default:
		return decayMedium
	}
}

// ParseSpeed maps "fast", "medium" and "slow" onto speeds.
func ParseSpeed(name string) (Speed, bool) {
	for s, n := range speedNames {
		if n == name {
			return s, true
		}
	}
	return Medium, false
}

// stepFactor is the share of the remaining distance covered in elapsedMillis.
func stepFactor(decay, elapsedMillis float64) float64 {
	if elapsedMillis <= 0 {
		return 0
	}
	return 1 - math.Pow(decay, elapsedMillis)
}

func approachValue(current, target, factor float64) float64 {
	if math.Abs(target-current) < settleThreshold {
		return target
	}
	next := current + (target-current)*factor
	if math.Abs(target-next) < settleThreshold {
		return target
	}
	return next
}

// approachAngle takes the shorter way around the circle.
func approachAngle(current, target, factor float64) float64 {
	switch diff := target - current; {
	case diff > math.Pi:
		current += 2 * math.Pi
	case diff < -math.Pi:
		current -= 2 * math.Pi
	}
	return approachValue(current, target, factor)
}

// approachLevel animates a rating. A segment becoming known starts its bar at zero;
// a segment becoming unknown shrinks its bar to zero first.
func approachLevel(current, target wheel.Level, factor float64) wheel.Level {
	switch {
	case target.Known && !current.Known:
		current = wheel.Level{Known: true}
	case !target.Known && current.Known:
		amount := approachValue(current.Amount, 0, factor)
		if amount == 0 {
			return target
		}
		return wheel.Level{Amount: amount, Known: true}
	case !target.Known:
		return target
	}
	current.Amount = approachValue(current.Amount, target.Amount, factor)
	return current
}

// approach moves current one step toward target and reports whether it is still
// short of it.
func approach(current *wheel.RenderParams, target wheel.RenderParams, decay, elapsedMillis float64) bool {
	factor := stepFactor(decay, elapsedMillis)

	current.Fills = target.Fills
	current.Labels = target.Labels
	for i := range current.Values {
		current.Values[i] = approachLevel(current.Values[i], target.Values[i], factor)
	}
	current.Center.X = approachValue(current.Center.X, target.Center.X, factor)
	current.Center.Y = approachValue(current.Center.Y, target.Center.Y, factor)
	current.Radius = approachValue(current.Radius, target.Radius, factor)
	current.BaseAngle = approachAngle(current.BaseAngle, target.BaseAngle, factor)

	return *current != target
}
