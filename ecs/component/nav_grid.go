package component

import (
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
)

// NavGrid is the pathfinding grid of one level kind, anchored at the
// minimum loaded chunk.
type NavGrid struct {
	Level  procgen.Level
	Anchor procgen.ChunkCoord
	Grid   *nav.Grid
}

var NavGridComponent = NewComponent[NavGrid]()
