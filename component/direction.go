package component

// Direction is one of the eight facings a sheet row can be authored for.
type Direction string

const (
	Front      Direction = "front"
	FrontRight Direction = "frontRight"
	Right      Direction = "right"
	BackRight  Direction = "backRight"
	Back       Direction = "back"
	BackLeft   Direction = "backLeft"
	Left       Direction = "left"
	FrontLeft  Direction = "frontLeft"
)

// Clockwise lists the facings in screen-space clockwise order starting at
// angle 0 (pointing right). Index i covers the sector centered on i*45°.
var Clockwise = [8]Direction{
	Right,
	FrontRight,
	Front,
	FrontLeft,
	Left,
	BackLeft,
	Back,
	BackRight,
}

// Valid reports whether d is one of the eight known facings.
func (d Direction) Valid() bool {
	for _, c := range Clockwise {
		if c == d {
			return true
		}
	}
	return false
}

// Diagonal reports whether d is one of the four diagonal facings.
func (d Direction) Diagonal() bool {
	switch d {
	case FrontRight, FrontLeft, BackRight, BackLeft:
		return true
	}
	return false
}

// Cardinal maps a diagonal to the front/back cardinal it falls back to.
// Non-diagonal facings are returned unchanged.
func (d Direction) Cardinal() Direction {
	switch d {
	case FrontRight, FrontLeft:
		return Front
	case BackRight, BackLeft:
		return Back
	}
	return d
}

// Mirror returns the facing reflected across the vertical axis.
func (d Direction) Mirror() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case FrontLeft:
		return FrontRight
	case FrontRight:
		return FrontLeft
	case BackLeft:
		return BackRight
	case BackRight:
		return BackLeft
	}
	return d
}
