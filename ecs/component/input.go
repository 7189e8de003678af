package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64
	Fast  bool
}

var InputComponent = NewComponent[Input]()
