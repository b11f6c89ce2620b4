package valves

import (
	"math"

	"golang.org/x/exp/maps"
)

// Graph is a weighted graph keyed by node identifier.
// Edges[a][b] is the cost of moving from a to b.
type Graph[K comparable] struct {
	Nodes map[K]bool
	Edges map[K]map[K]int
}

func (g *Graph[K]) AddNode(a K) {
	InitMap(&g.Nodes)
	g.Nodes[a] = true
}

// AddArc adds a one-way edge from a to b.
func (g *Graph[K]) AddArc(a, b K, dist int) {
	InitMap(&g.Edges)
	g.AddNode(a)
	g.AddNode(b)
	if g.Edges[a] == nil {
		g.Edges[a] = make(map[K]int)
	}
	g.Edges[a][b] = dist
}

// AddEdge adds an edge usable in both directions.
func (g *Graph[K]) AddEdge(a, b K, dist int) {
	g.AddArc(a, b, dist)
	g.AddArc(b, a, dist)
}

// ReachableNodes returns the nodes that can be reached from a, a included.
func (g *Graph[K]) ReachableNodes(a K) map[K]bool {
	visited := make(map[K]bool)
	q := NewQueue(a)
	q.While(func(v K) bool {
		if visited[v] {
			return true
		}
		visited[v] = true
		for k := range g.Edges[v] {
			q.Push(k)
		}
		return true
	})
	return visited
}

type Edge[T comparable] struct {
	A, B T
}

// Unreachable is the distance recorded between two nodes with no path
// between them.
const Unreachable = math.MaxInt

// DistTable holds the shortest distance for every ordered pair of nodes.
type DistTable[K comparable] map[Edge[K]]int

// Dist returns the shortest distance from a to b. It panics if either node
// was not part of the graph the table was built from.
func (d DistTable[K]) Dist(a, b K) int {
	v, ok := d[Edge[K]{a, b}]
	if !ok {
		panic("valves: node not in distance table")
	}
	return v
}

// Reachable reports whether b can be reached from a.
func (d DistTable[K]) Reachable(a, b K) bool {
	v, ok := d[Edge[K]{a, b}]
	return ok && v != Unreachable
}

// Distances computes all-pairs shortest paths with Floyd–Warshall.
// The graph is not modified.
func (g *Graph[K]) Distances() DistTable[K] {
	type key = Edge[K]
	nodes := maps.Keys(g.Nodes)
	dist := make(DistTable[K], len(nodes)*len(nodes))
	for _, a := range nodes {
		for _, b := range nodes {
			dist[key{a, b}] = Unreachable
		}
		dist[key{a, a}] = 0
	}
	for a, e := range g.Edges {
		for b, v := range e {
			if a != b && v < dist[key{a, b}] {
				dist[key{a, b}] = v
			}
		}
	}
	for _, k := range nodes {
		for _, i := range nodes {
			ik := dist[key{i, k}]
			if ik == Unreachable {
				continue
			}
			for _, j := range nodes {
				kj := dist[key{k, j}]
				if kj == Unreachable {
					continue
				}
				if e := ik + kj; e < dist[key{i, j}] {
					dist[key{i, j}] = e
				}
			}
		}
	}
	return dist
}
