package component

// StateName names an animation state and the pack state it plays.
type StateName string

const (
	StateIdle  StateName = "idle"
	StateWalk  StateName = "walk"
	StateSleep StateName = "sleep"
)

// Required reports whether every pack must define s.
func (s StateName) Required() bool {
	return s == StateIdle || s == StateWalk
}
