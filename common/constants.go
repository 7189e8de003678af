package common

// Logical screen size of the viewer. The chunk despawn range is derived from
// the same height.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
