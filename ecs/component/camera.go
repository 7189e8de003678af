package component

// Camera moves the viewpoint. With a TargetName it eases toward the named
// NPC instead of following input.
type Camera struct {
	TargetName string
	PanSpeed   float64
	FastFactor float64
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
