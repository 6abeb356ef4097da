package orbit

import (
	"fmt"
	"sort"
)

// Edge is a directed pair of vertices.
type Edge struct {
	From ID
	To   ID
}

// Graph is a directed weighted graph over arena IDs. A zero weight means
// "no edge": setting it removes the relation.
type Graph struct {
	vertices map[ID]struct{}
	out      map[ID]map[ID]float32 // out[from][to] = weight
	in       map[ID]map[ID]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[ID]struct{}),
		out:      make(map[ID]map[ID]float32),
		in:       make(map[ID]map[ID]struct{}),
	}
}

// AddVertex adds v if it is not present yet.
func (g *Graph) AddVertex(v ID) {
	g.vertices[v] = struct{}{}
}

func (g *Graph) HasVertex(v ID) bool {
	_, ok := g.vertices[v]
	return ok
}

// RemoveVertex drops v together with every edge that starts or ends at it.
func (g *Graph) RemoveVertex(v ID) {
	if !g.HasVertex(v) {
		return
	}
	for to := range g.out[v] {
		delete(g.in[to], v)
	}
	for from := range g.in[v] {
		delete(g.out[from], v)
	}
	delete(g.out, v)
	delete(g.in, v)
	delete(g.vertices, v)
}

// SetEdge sets the weight of a→b. Weight 0 removes the edge. Both
// endpoints are added as vertices either way.
func (g *Graph) SetEdge(a, b ID, weight float32) error {
	if a == b {
		return fmt.Errorf("%w: %d", ErrSelfLoop, a)
	}
	g.AddVertex(a)
	g.AddVertex(b)
	if weight == 0 {
		delete(g.out[a], b)
		delete(g.in[b], a)
		return nil
	}
	if g.out[a] == nil {
		g.out[a] = make(map[ID]float32)
	}
	if g.in[b] == nil {
		g.in[b] = make(map[ID]struct{})
	}
	g.out[a][b] = weight
	g.in[b][a] = struct{}{}
	return nil
}

// Weight returns the weight of a→b, or 0 when there is no such edge.
func (g *Graph) Weight(a, b ID) float32 {
	return g.out[a][b]
}

// Targets returns a copy of v's forward adjacency.
func (g *Graph) Targets(v ID) map[ID]float32 {
	out := make(map[ID]float32, len(g.out[v]))
	for to, w := range g.out[v] {
		out[to] = w
	}
	return out
}

// Edges returns a copy of the full directed edge set.
func (g *Graph) Edges() map[Edge]float32 {
	out := make(map[Edge]float32)
	for from, m := range g.out {
		for to, w := range m {
			out[Edge{From: from, To: to}] = w
		}
	}
	return out
}

// Vertices returns the vertex set in ascending ID order.
func (g *Graph) Vertices() []ID {
	out := make([]ID, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (g *Graph) Order() int { return len(g.vertices) }

// Size returns the number of directed edges.
func (g *Graph) Size() int {
	n := 0
	for _, m := range g.out {
		n += len(m)
	}
	return n
}

// Clone returns an independent copy.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for v := range g.vertices {
		c.vertices[v] = struct{}{}
	}
	for from, m := range g.out {
		if len(m) == 0 {
			continue
		}
		c.out[from] = make(map[ID]float32, len(m))
		for to, w := range m {
			c.out[from][to] = w
			if c.in[to] == nil {
				c.in[to] = make(map[ID]struct{})
			}
			c.in[to][from] = struct{}{}
		}
	}
	return c
}
