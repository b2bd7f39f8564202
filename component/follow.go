package component

import "github.com/milk9111/cursorpal/common"

// FollowState holds the eased anchor the sprite is drawn at and the point it
// is easing toward.
type FollowState struct {
	Anchor common.Vec2
	Target common.Vec2
	// Placed is false until the anchor has been put on a known pointer.
	Placed bool
}
