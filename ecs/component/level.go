package component

import "github.com/milk9111/overworld/procgen"

// LevelRoot owns every entity streamed for one level kind.
type LevelRoot struct {
	Level procgen.Level
}

var LevelRootComponent = NewComponent[LevelRoot]()
