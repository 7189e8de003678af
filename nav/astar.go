package nav

import (
	"container/heap"
	"math"
)

var cardinalSteps = [...]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

var diagonalSteps = [...]Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// FindPath returns the cheapest path from start to goal, both included.
// Entering a cell costs its passability value, scaled by sqrt(2) on a
// diagonal step. When the grid is built, endpoints in different regions
// fail without searching.
func (g *Grid) FindPath(start, goal Point) ([]Point, bool) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, false
	}
	if !g.cells[g.index(start)].IsPassable() || !g.cells[g.index(goal)].IsPassable() {
		return nil, false
	}
	if start == goal {
		return []Point{start}, true
	}
	if g.Built() && g.regions[g.index(start)] != g.regions[g.index(goal)] {
		return nil, false
	}

	w := g.settings.Width
	n := len(g.cells)
	cameFrom := make([]int, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, n)

	startIdx := g.index(start)
	goalIdx := g.index(goal)
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{pos: start, f: g.heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem)
		curIdx := g.index(cur.pos)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true
		if curIdx == goalIdx {
			return reconstructPath(cameFrom, w, startIdx, goalIdx), true
		}

		g.eachNeighbor(cur.pos, func(next Point, diagonal bool) {
			idx := g.index(next)
			if closed[idx] {
				return
			}
			step := float64(g.cells[idx].Cost())
			if diagonal {
				step *= math.Sqrt2
			}
			tentative := gScore[curIdx] + step
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				heap.Push(open, &openItem{pos: next, f: tentative + g.heuristic(next, goal), g: tentative})
			}
		})
	}

	return nil, false
}

func (g *Grid) passable(p Point) bool {
	return g.InBounds(p) && g.cells[g.index(p)].IsPassable()
}

func (g *Grid) eachNeighbor(p Point, fn func(Point, bool)) {
	for _, d := range cardinalSteps {
		next := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if g.passable(next) {
			fn(next, false)
		}
	}
	if g.settings.Neighborhood == Cardinal {
		return
	}
	for _, d := range diagonalSteps {
		next := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if !g.passable(next) {
			continue
		}
		// no corner cutting
		if !g.passable(Point{X: p.X + d.X, Y: p.Y}) || !g.passable(Point{X: p.X, Y: p.Y + d.Y}) {
			continue
		}
		fn(next, true)
	}
}

func (g *Grid) heuristic(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if g.settings.Neighborhood == Cardinal {
		return dx + dy
	}
	// octile distance
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

func reconstructPath(cameFrom []int, width, startIdx, goalIdx int) []Point {
	path := make([]Point, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, Point{X: cur % width, Y: cur / width})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	pos   Point
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
