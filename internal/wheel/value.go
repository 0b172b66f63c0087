package wheel

import (
	"encoding/json"
	"math"
	"strconv"
)

// MaxValue is the highest satisfaction rating a segment can carry.
const MaxValue = 10

// Value is a segment's satisfaction rating. The zero Value is unknown, which is
// rendered differently from a known rating of 0.
type Value struct {
	N     int
	Known bool
}

// Unknown is the rating of a segment the user has not rated yet.
var Unknown = Value{}

// ValueOf clamps v into [0, MaxValue]. NaN is treated as unknown.
func ValueOf(v float64) Value {
	if math.IsNaN(v) {
		return Unknown
	}
	v = math.Max(0, math.Min(MaxValue, v))
	return Value{N: int(math.Floor(v)), Known: true}
}

// Fraction returns the rating as a share of MaxValue, or 0 when unknown.
func (v Value) Fraction() float64 {
	if !v.Known {
		return 0
	}
	return float64(v.N) / MaxValue
}

func (v Value) String() string {
	if !v.Known {
		return "unknown"
	}
	return strconv.Itoa(v.N)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Known {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(v.N), 10), nil
}

// UnmarshalJSON never fails: anything that is not a JSON number decodes as Unknown.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = Unknown
		return nil
	}
	n, ok := raw.(float64)
	if !ok {
		*v = Unknown
		return nil
	}
	*v = ValueOf(n)
	return nil
}
