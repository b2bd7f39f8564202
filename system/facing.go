package system

import (
	"math"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/pack"
)

// DefaultDeadzone is the per-axis speed (px/sec) under which the facing
// falls back to front.
const DefaultDeadzone = 0.3

// Classify buckets a velocity into one of eight facings using the default
// deadzone.
func Classify(vx, vy float64) component.Direction {
	return ClassifyWithDeadzone(vx, vy, DefaultDeadzone)
}

// ClassifyWithDeadzone buckets (vx, vy) into 45° sectors centered on the
// cardinals and diagonals, clockwise from right in screen space (+y is down,
// which is front). Velocities inside the deadzone on both axes face front.
func ClassifyWithDeadzone(vx, vy, deadzone float64) component.Direction {
	if math.IsNaN(vx) || math.IsNaN(vy) || math.IsInf(vx, 0) || math.IsInf(vy, 0) {
		return component.Front
	}
	if math.Abs(vx) <= deadzone && math.Abs(vy) <= deadzone {
		return component.Front
	}
	angle := math.Atan2(vy, vx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	idx := int(math.Floor((angle+math.Pi/8)/(math.Pi/4))) % len(component.Clockwise)
	return component.Clockwise[idx]
}

// ResolveRow picks the sheet row for key. Lookup order: key itself, the
// diagonal's front/back cardinal, front, then row 0.
func ResolveRow(rows pack.RowTable, key component.Direction) int {
	if r, ok := rows[key]; ok {
		return r
	}
	if key.Diagonal() {
		if r, ok := rows[key.Cardinal()]; ok {
			return r
		}
	}
	if r, ok := rows[component.Front]; ok {
		return r
	}
	return 0
}

// ResolveMirrored is ResolveRow for packs whose sheets may be mirrored: when
// key has no row of its own but its horizontal mirror does, that row is used
// and mirrored is true.
func ResolveMirrored(rows pack.RowTable, key component.Direction) (row int, mirrored bool) {
	if _, ok := rows[key]; !ok {
		if m := key.Mirror(); m != key {
			if r, ok := rows[m]; ok {
				return r, true
			}
		}
	}
	return ResolveRow(rows, key), false
}
