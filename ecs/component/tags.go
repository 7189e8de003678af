package component

// CameraTag marks the viewpoint the chunk streamer follows.
type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
