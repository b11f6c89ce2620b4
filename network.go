package valves

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Network is a graph of valves. Every node has a rate, the reward it yields
// per remaining time unit once activated; most rates are zero.
type Network[K constraints.Ordered] struct {
	Graph[K]
	Rates map[K]int
}

// AddValve adds a valve with the given rate and unit-cost tunnels to each
// of the named neighbors.
func (n *Network[K]) AddValve(id K, rate int, tunnels ...K) {
	InitMap(&n.Rates)
	n.Rates[id] = rate
	n.AddNode(id)
	for _, t := range tunnels {
		n.AddArc(id, t, 1)
	}
}

// Rewarding returns the valves with a strictly positive rate.
func (n *Network[K]) Rewarding() map[K]int {
	out := maps.Clone(n.Rates)
	maps.DeleteFunc(out, func(_ K, r int) bool { return r <= 0 })
	return out
}

// Validate reports whether the network is fit to be searched from origin:
// the origin exists, every tunnel leads to a declared valve, no rate is
// negative and every rewarding valve can be reached from the origin.
// Valves are checked in sorted order, so the first problem found is always
// the same one.
func (n *Network[K]) Validate(origin K) error {
	if _, ok := n.Rates[origin]; !ok {
		return fmt.Errorf("origin %v is not a valve", origin)
	}
	for _, id := range sortedKeys(n.Edges) {
		if _, ok := n.Rates[id]; !ok {
			return fmt.Errorf("tunnel from undeclared valve %v", id)
		}
		for _, t := range sortedKeys(n.Edges[id]) {
			if _, ok := n.Rates[t]; !ok {
				return fmt.Errorf("valve %v: tunnel to undeclared valve %v", id, t)
			}
		}
	}
	ids := sortedKeys(n.Rates)
	for _, id := range ids {
		if r := n.Rates[id]; r < 0 {
			return fmt.Errorf("valve %v: negative rate %d", id, r)
		}
	}
	reach := n.ReachableNodes(origin)
	for _, id := range ids {
		if n.Rates[id] > 0 && !reach[id] {
			return fmt.Errorf("valve %v cannot be reached from %v", id, origin)
		}
	}
	return nil
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
