// Package nav implements the pathfinding grid synchronised to the streamed
// chunk region: passability cells, derived region labels and A* queries.
package nav

// Point is a cell coordinate in grid-local space.
type Point struct {
	X int
	Y int
}

// Cell is a passability value. Zero is impassable; any other value is the
// cost of entering the cell.
type Cell uint32

const Impassable Cell = 0

// Passable returns a passable cell with the given entry cost (minimum 1).
func Passable(cost uint32) Cell {
	if cost == 0 {
		cost = 1
	}
	return Cell(cost)
}

func (c Cell) IsPassable() bool {
	return c != Impassable
}

func (c Cell) Cost() uint32 {
	return uint32(c)
}

type Neighborhood uint8

const (
	// Ordinal allows diagonal moves, but never across a blocked corner.
	Ordinal Neighborhood = iota
	Cardinal
)

type Settings struct {
	Width             int
	Height            int
	ChunkSize         int
	DefaultImpassable bool
	Neighborhood      Neighborhood
}

type SettingsBuilder struct {
	s Settings
}

func NewSettings2D(width, height int) *SettingsBuilder {
	return &SettingsBuilder{s: Settings{Width: width, Height: height, ChunkSize: width}}
}

func (b *SettingsBuilder) ChunkSize(n int) *SettingsBuilder {
	b.s.ChunkSize = n
	return b
}

func (b *SettingsBuilder) DefaultImpassable() *SettingsBuilder {
	b.s.DefaultImpassable = true
	return b
}

func (b *SettingsBuilder) Cardinal() *SettingsBuilder {
	b.s.Neighborhood = Cardinal
	return b
}

func (b *SettingsBuilder) Build() Settings {
	s := b.s
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = max(s.Width, 1)
	}
	return s
}

// Grid is a dense passability grid. Build must run after edits for the
// region acceleration data to be used by FindPath.
type Grid struct {
	settings Settings
	cells    []Cell

	regions       []int32
	regionCount   int
	chunkCols     int
	chunkPassable []int
	built         bool
	stale         bool
}

func New(settings Settings) *Grid {
	fill := Passable(1)
	if settings.DefaultImpassable {
		fill = Impassable
	}
	g := &Grid{
		settings: settings,
		cells:    make([]Cell, settings.Width*settings.Height),
	}
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g
}

func (g *Grid) Settings() Settings { return g.settings }
func (g *Grid) Width() int         { return g.settings.Width }
func (g *Grid) Height() int        { return g.settings.Height }

func (g *Grid) InBounds(p Point) bool {
	return g != nil && p.X >= 0 && p.Y >= 0 && p.X < g.settings.Width && p.Y < g.settings.Height
}

func (g *Grid) index(p Point) int {
	return p.Y*g.settings.Width + p.X
}

// Nav returns the cell at p. Out-of-bounds points report false.
func (g *Grid) Nav(p Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Impassable, false
	}
	return g.cells[g.index(p)], true
}

// SetNav writes one cell and marks the derived data stale.
func (g *Grid) SetNav(p Point, c Cell) bool {
	if !g.InBounds(p) {
		return false
	}
	i := g.index(p)
	if g.cells[i] != c {
		g.cells[i] = c
		g.stale = true
	}
	return true
}

// Fill writes every cell.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
	g.stale = true
}

// Built reports whether the region data matches the current cells.
func (g *Grid) Built() bool {
	return g != nil && g.built && !g.stale
}

// Build recomputes connected regions and per-chunk passable counts.
func (g *Grid) Build() {
	w, h := g.settings.Width, g.settings.Height
	if len(g.regions) != len(g.cells) {
		g.regions = make([]int32, len(g.cells))
	}
	for i := range g.regions {
		g.regions[i] = -1
	}

	cs := g.settings.ChunkSize
	g.chunkCols = (w + cs - 1) / cs
	chunkRows := (h + cs - 1) / cs
	g.chunkPassable = make([]int, g.chunkCols*chunkRows)

	g.regionCount = 0
	queue := make([]int, 0, 64)
	for start := range g.cells {
		if !g.cells[start].IsPassable() {
			continue
		}
		g.chunkPassable[(start/w/cs)*g.chunkCols+(start%w)/cs]++
		if g.regions[start] >= 0 {
			continue
		}
		label := int32(g.regionCount)
		g.regionCount++
		g.regions[start] = label
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := cur%w, cur/w
			for _, d := range cardinalSteps {
				nx, ny := x+d.X, y+d.Y
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if g.regions[ni] >= 0 || !g.cells[ni].IsPassable() {
					continue
				}
				g.regions[ni] = label
				queue = append(queue, ni)
			}
		}
	}

	g.built = true
	g.stale = false
}

// Region returns the connected region label of p as of the last Build.
func (g *Grid) Region(p Point) (int, bool) {
	if !g.Built() || !g.InBounds(p) {
		return 0, false
	}
	r := g.regions[g.index(p)]
	return int(r), r >= 0
}

func (g *Grid) RegionCount() int {
	if !g.Built() {
		return 0
	}
	return g.regionCount
}

// ChunkPassable returns the passable cell count of one grid chunk as of the
// last Build.
func (g *Grid) ChunkPassable(cx, cy int) int {
	if !g.Built() || cx < 0 || cy < 0 || cx >= g.chunkCols {
		return 0
	}
	i := cy*g.chunkCols + cx
	if i >= len(g.chunkPassable) {
		return 0
	}
	return g.chunkPassable[i]
}
