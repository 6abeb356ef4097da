package analysis

import (
	"math"

	"github.com/san-kum/orbsim/internal/orbit"
)

// LogicalDistance returns the minimum number of directed hops from a to b,
// 0 when a == b, and -1 when either vertex is absent or b is unreachable.
func LogicalDistance(g *orbit.Graph, a, b orbit.ID) int {
	if !g.HasVertex(a) || !g.HasVertex(b) {
		return -1
	}
	if a == b {
		return 0
	}
	depth := map[orbit.ID]int{a: 0}
	queue := []orbit.ID{a}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for w := range g.Targets(v) {
			if _, seen := depth[w]; seen {
				continue
			}
			if w == b {
				return depth[v] + 1
			}
			depth[w] = depth[v] + 1
			queue = append(queue, w)
		}
	}
	return -1
}

// Reachable returns the BFS hop depth of every vertex reachable from
// `from`, including from itself at depth 0. Absent vertices yield an empty map.
func Reachable(g *orbit.Graph, from orbit.ID) map[orbit.ID]int {
	depth := make(map[orbit.ID]int)
	if !g.HasVertex(from) {
		return depth
	}
	depth[from] = 0
	queue := []orbit.ID{from}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for w := range g.Targets(v) {
			if _, seen := depth[w]; !seen {
				depth[w] = depth[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return depth
}

// PhysicalDistance applies the law of cosines to the major radii of the
// current tracks and the angular gap in degrees.
func PhysicalDistance(a, b orbit.Object) float64 {
	r1 := a.Track().Major
	r2 := b.Track().Major
	theta := math.Abs(a.Angle()-b.Angle()) * math.Pi / 180
	d2 := r1*r1 + r2*r2 - 2*r1*r2*math.Cos(theta)
	if d2 <= 0 {
		return 0
	}
	return math.Sqrt(d2)
}
