package valves

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Mode selects how many agents share the work.
type Mode int

const (
	// OneAgent searches for a single agent starting at the origin.
	OneAgent Mode = iota + 1
	// TwoAgents adds a helper that starts fresh from the origin with the
	// same time limit and activates only valves the first agent left
	// untouched. The two agents never block each other.
	TwoAgents
)

func (m Mode) String() string {
	switch m {
	case OneAgent:
		return "one-agent"
	case TwoAgents:
		return "two-agents"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Step is a single activation in a Plan.
type Step[K any] struct {
	Agent int // 1 for the first agent, 2 for the helper
	Node  K
	At    int // time at which the valve starts yielding
}

// Plan is an activation schedule and the reward it yields by the time
// limit.
type Plan[K any] struct {
	Reward int
	Steps  []Step[K]
}

// maxHelperValves bounds the number of rewarding valves in TwoAgents mode,
// where the helper's best plan is tabulated for every subset of them.
const maxHelperValves = 20

// BestReward returns the maximum reward collectable within limit time units
// starting at origin. Only entries of rates with a positive value are
// considered for activation. dist must contain origin and every key of
// rates.
func BestReward[K constraints.Ordered](origin K, rates map[K]int, dist DistTable[K], limit int, mode Mode) int {
	return BestPlan(origin, rates, dist, limit, mode).Reward
}

// BestPlan is like BestReward but also returns the schedule that achieves
// the reward. When several schedules tie, the first in sorted valve order
// wins.
//
// It panics if there are more than 64 rewarding valves, or more than 20 in
// TwoAgents mode.
func BestPlan[K constraints.Ordered](origin K, rates map[K]int, dist DistTable[K], limit int, mode Mode) Plan[K] {
	if mode != OneAgent && mode != TwoAgents {
		panic(fmt.Sprintf("valves: unknown mode %v", mode))
	}
	if _, ok := dist[Edge[K]{origin, origin}]; !ok {
		panic(fmt.Sprintf("valves: origin %v not in distance table", origin))
	}
	s := &searcher[K]{
		origin: origin,
		rates:  rates,
		dist:   dist,
		limit:  limit,
	}
	for v, r := range rates {
		if r > 0 {
			s.cands = append(s.cands, v)
		}
	}
	slices.Sort(s.cands)
	most := 64
	if mode == TwoAgents {
		most = maxHelperValves
	}
	if len(s.cands) > most {
		panic(fmt.Sprintf("valves: %d rewarding valves, at most %d supported in %v mode", len(s.cands), most, mode))
	}

	a := s.newAgent(1)
	if mode == TwoAgents {
		a.helper = s.helperTable()
	}
	a.visit(origin, 0, 0)
	return a.best
}

// searcher holds the inputs shared by every agent of a single search.
type searcher[K constraints.Ordered] struct {
	origin K
	rates  map[K]int
	dist   DistTable[K]
	limit  int

	// cands are the rewarding valves in sorted order. Sets of valves are
	// bitmasks with bit i standing for cands[i].
	cands []K
}

func (s *searcher[K]) all() uint64 {
	return uint64(1)<<len(s.cands) - 1
}

func (s *searcher[K]) newAgent(id int) *agent[K] {
	return &agent[K]{
		s:    s,
		id:   id,
		best: Plan[K]{Reward: -1},
	}
}

// helperTable returns, for every set of valves, the best plan of a helper
// that starts at the origin and may activate only valves in that set.
//
// A single search records the best plan per exact set of activated valves;
// each entry is then raised to the best over its subsets, in increasing
// order so that every subset is final before it is read.
func (s *searcher[K]) helperTable() []Plan[K] {
	h := s.newAgent(2)
	h.exact = make([]Plan[K], s.all()+1)
	for i := range h.exact {
		h.exact[i].Reward = -1
	}
	h.visit(s.origin, 0, 0)

	table := h.exact
	for set := range table {
		for i := range s.cands {
			bit := 1 << i
			if set&bit == 0 {
				continue
			}
			if sub := table[set&^bit]; sub.Reward > table[set].Reward {
				table[set] = sub
			}
		}
	}
	return table
}

type agent[K constraints.Ordered] struct {
	s  *searcher[K]
	id int

	opened uint64 // valves activated on the current path
	path   Stack[Step[K]]
	best   Plan[K]

	// helper, when set, is the helper's table from helperTable; the reward
	// of every state includes the helper working the unopened valves.
	helper []Plan[K]
	// exact, when set, collects the best plan per set of opened valves
	// instead of tracking best.
	exact []Plan[K]
}

// visit explores every schedule extending the current one. The agent stands
// at node at after used time units, with reward already locked in up to the
// time limit.
func (a *agent[K]) visit(at K, used, reward int) {
	a.record(reward)
	for i, v := range a.s.cands {
		if a.opened&(1<<i) != 0 || !a.s.dist.Reachable(at, v) {
			continue
		}
		t := used + a.s.dist.Dist(at, v) + 1
		if t > a.s.limit {
			continue
		}
		a.activate(i, t, func() {
			a.visit(v, t, reward+a.s.rates[v]*(a.s.limit-t))
		})
	}
}

func (a *agent[K]) record(reward int) {
	if a.exact != nil {
		if reward > a.exact[a.opened].Reward {
			a.exact[a.opened] = Plan[K]{Reward: reward, Steps: a.path.Snapshot()}
		}
		return
	}
	total := reward
	var helper Plan[K]
	if a.helper != nil {
		helper = a.helper[a.s.all()&^a.opened]
		total += helper.Reward
	}
	if total > a.best.Reward {
		a.best = Plan[K]{
			Reward: total,
			Steps:  append(a.path.Snapshot(), helper.Steps...),
		}
	}
}

// activate marks cands[i] as activated at time t for the duration of f.
func (a *agent[K]) activate(i, t int, f func()) {
	bit := uint64(1) << i
	a.opened |= bit
	a.path.Push(Step[K]{Agent: a.id, Node: a.s.cands[i], At: t})
	defer func() {
		a.path.Pop()
		a.opened &^= bit
	}()
	f()
}
