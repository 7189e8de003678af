package component

import (
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
)

// Pathfinding stores the current goal and the grid path toward it. Path is
// grid-local; Waypoints holds the same nodes as world-space tile centres
// computed against Anchor, so they stay valid if the grid moves.
type Pathfinding struct {
	Goal      nav.Point
	HasGoal   bool
	Path      []nav.Point
	Waypoints []procgen.Vec2
	Anchor    procgen.ChunkCoord
	Next      int
	LastStart nav.Point
	LastGoal  nav.Point
	Failed    bool
}

// Done reports whether every waypoint has been reached.
func (p *Pathfinding) Done() bool {
	return p == nil || p.Next >= len(p.Waypoints)
}

var PathfindingComponent = NewComponent[Pathfinding]()

// Mover steers a transform along its waypoints at Speed pixels per second.
type Mover struct {
	Speed  float64
	Arrive float64
}

var MoverComponent = NewComponent[Mover]()
