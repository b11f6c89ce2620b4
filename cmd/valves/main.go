// Command valves prints the most pressure that can be released from a
// valve network alone and with a helper.
package main

import (
	_ "embed"
	"flag"

	"github.com/maisem/valves"
)

var (
	origin        = flag.String("origin", "AA", "valve both agents start at")
	horizon       = flag.Int("horizon", 30, "time limit when working alone")
	helperHorizon = flag.Int("helper-horizon", 26, "time limit when working with a helper")
)

func main() {
	valves.Run(2022, 16, source, &solver{})
}

//go:embed main.go
var source []byte

type solver struct {
	*valves.Puzzle
}

func (s solver) solve(limit int, mode valves.Mode) int {
	n := valves.MustGet(valves.ParseNetwork(s.Reader()))
	valves.MustDo(n.Validate(*origin))
	plan := valves.BestPlan(*origin, n.Rewarding(), n.Distances(), limit, mode)
	for _, st := range plan.Steps {
		s.Debugf("agent %d opens %s at %d", st.Agent, st.Node, st.At)
	}
	return plan.Reward
}

/*
want=1651

Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
*/
func (s solver) P1() any {
	return s.solve(*horizon, valves.OneAgent)
}

// want=1707
func (s solver) P2() any {
	return s.solve(*helperHorizon, valves.TwoAgents)
}
