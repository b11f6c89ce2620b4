package valves

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var valveRx = regexp.MustCompile(`^Valve (\S+) has flow rate=(\d+); tunnels? leads? to valves? (.+)$`)

// ParseLine parses a single valve description such as
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
func ParseLine(line string) (name string, rate int, tunnels []string, err error) {
	m := valveRx.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", 0, nil, fmt.Errorf("malformed valve line %q", line)
	}
	rate, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, nil, fmt.Errorf("valve %s: bad rate: %w", m[1], err)
	}
	for _, t := range strings.Split(m[3], ",") {
		tunnels = append(tunnels, strings.TrimSpace(t))
	}
	return m[1], rate, tunnels, nil
}

// ParseNetwork reads one valve per line from r. Blank lines are skipped.
func ParseNetwork(r io.Reader) (*Network[string], error) {
	n := new(Network[string])
	s := bufio.NewScanner(r)
	for ln := 1; s.Scan(); ln++ {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		name, rate, tunnels, err := ParseLine(s.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		n.AddValve(name, rate, tunnels...)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return n, nil
}
