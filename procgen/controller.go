package procgen

import "sort"

// ChunkController is the set of materialized chunk coordinates for one level
// kind. A coordinate is present exactly while a live chunk entity exists for it.
type ChunkController struct {
	level      Level
	chunks     map[ChunkCoord]struct{}
	generation uint64
}

func NewChunkController(level Level) *ChunkController {
	return &ChunkController{
		level:  level,
		chunks: make(map[ChunkCoord]struct{}),
	}
}

func (c *ChunkController) Level() Level {
	return c.level
}

func (c *ChunkController) Contains(coord ChunkCoord) bool {
	if c == nil {
		return false
	}
	_, ok := c.chunks[coord]
	return ok
}

// Insert adds coord and reports whether it was missing.
func (c *ChunkController) Insert(coord ChunkCoord) bool {
	if c.Contains(coord) {
		return false
	}
	c.chunks[coord] = struct{}{}
	c.generation++
	return true
}

// Remove deletes coord and reports whether it was present.
func (c *ChunkController) Remove(coord ChunkCoord) bool {
	if !c.Contains(coord) {
		return false
	}
	delete(c.chunks, coord)
	c.generation++
	return true
}

// Clear forgets every coordinate without touching entities. Used on level
// teardown, where the level despawns its own children.
func (c *ChunkController) Clear() {
	if c == nil || len(c.chunks) == 0 {
		return
	}
	c.chunks = make(map[ChunkCoord]struct{})
	c.generation++
}

func (c *ChunkController) Len() int {
	if c == nil {
		return 0
	}
	return len(c.chunks)
}

// Generation increases with every change to the set.
func (c *ChunkController) Generation() uint64 {
	if c == nil {
		return 0
	}
	return c.generation
}

// Coords returns the coordinates sorted by (x, y).
func (c *ChunkController) Coords() []ChunkCoord {
	if c == nil {
		return nil
	}
	out := make([]ChunkCoord, 0, len(c.chunks))
	for coord := range c.chunks {
		out = append(out, coord)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Min returns the lexicographically smallest coordinate (x first, then y).
// This is the anchor of the navigation grid.
func (c *ChunkController) Min() (ChunkCoord, bool) {
	if c.Len() == 0 {
		return ChunkCoord{}, false
	}
	var (
		best  ChunkCoord
		found bool
	)
	for coord := range c.chunks {
		if !found || coord.Less(best) {
			best = coord
			found = true
		}
	}
	return best, true
}

// Anchor is Min as an error for callers that cannot proceed without one.
func (c *ChunkController) Anchor() (ChunkCoord, error) {
	anchor, ok := c.Min()
	if !ok {
		return ChunkCoord{}, ErrNoChunks
	}
	return anchor, nil
}

// Controllers holds one ChunkController per level kind.
type Controllers struct {
	byLevel map[Level]*ChunkController
}

func NewControllers(levels ...Level) *Controllers {
	c := &Controllers{byLevel: make(map[Level]*ChunkController, len(levels))}
	for _, l := range levels {
		c.For(l)
	}
	return c
}

// For returns the controller of level, creating an empty one on first use.
func (c *Controllers) For(level Level) *ChunkController {
	if ctrl, ok := c.byLevel[level]; ok {
		return ctrl
	}
	ctrl := NewChunkController(level)
	c.byLevel[level] = ctrl
	return ctrl
}

// Clear empties the controller of level.
func (c *Controllers) Clear(level Level) {
	if ctrl, ok := c.byLevel[level]; ok {
		ctrl.Clear()
	}
}
