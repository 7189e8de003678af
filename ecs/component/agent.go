package component

import "github.com/milk9111/overworld/procgen"

// ProcGenerated marks a character tracked on the level's navigation grid.
type ProcGenerated struct {
	Level procgen.Level
}

var ProcGeneratedComponent = NewComponent[ProcGenerated]()

// AgentPos is a character's tile in grid-local coordinates. Z is always 0.
// Values outside the grid are kept as-is.
type AgentPos struct {
	X int
	Y int
	Z int
}

var AgentPosComponent = NewComponent[AgentPos]()
