package valves

import (
	"slices"
	"strings"
	"testing"
)

const sampleNetwork = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
`

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		rate    int
		tunnels []string
	}{
		{"Valve AA has flow rate=0; tunnels lead to valves DD, II, BB", "AA", 0, []string{"DD", "II", "BB"}},
		{"Valve HH has flow rate=22; tunnel leads to valve GG", "HH", 22, []string{"GG"}},
		{"  Valve QZ has flow rate=7; tunnels lead to valves AA,BB  ", "QZ", 7, []string{"AA", "BB"}},
	}
	for _, tt := range tests {
		name, rate, tunnels, err := ParseLine(tt.line)
		if err != nil {
			t.Errorf("ParseLine(%q): %v", tt.line, err)
			continue
		}
		if name != tt.name || rate != tt.rate || !slices.Equal(tunnels, tt.tunnels) {
			t.Errorf("ParseLine(%q) = %q, %d, %q; want %q, %d, %q", tt.line, name, rate, tunnels, tt.name, tt.rate, tt.tunnels)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"Valve AA has flow rate=-1; tunnels lead to valves BB",
		"Valve AA has flow rate=x; tunnels lead to valves BB",
		"Valve AA has flow rate=3",
		"Valve AA has flow rate=99999999999999999999999; tunnel leads to valve BB",
	} {
		if _, _, _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) succeeded, want error", line)
		}
	}
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork(strings.NewReader(sampleNetwork + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Nodes) != 10 || len(n.Rates) != 10 {
		t.Errorf("got %d nodes and %d rates, want 10 each", len(n.Nodes), len(n.Rates))
	}
	if got := n.Edges["DD"]; len(got) != 3 || got["EE"] != 1 {
		t.Errorf("tunnels from DD = %v", got)
	}
	if got := len(n.Rewarding()); got != 6 {
		t.Errorf("%d rewarding valves, want 6", got)
	}
	if err := n.Validate("AA"); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseNetworkReportsLine(t *testing.T) {
	_, err := ParseNetwork(strings.NewReader("Valve AA has flow rate=0; tunnel leads to valve BB\nbogus\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want mention of line 2", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*Network[string])
		origin  string
		wantErr string
	}{
		{
			name:    "missing origin",
			build:   func(n *Network[string]) { n.AddValve("BB", 1) },
			origin:  "AA",
			wantErr: "origin AA",
		},
		{
			name:    "dangling tunnel",
			build:   func(n *Network[string]) { n.AddValve("AA", 0, "ZZ") },
			origin:  "AA",
			wantErr: "undeclared valve ZZ",
		},
		{
			name:    "negative rate",
			build:   func(n *Network[string]) { n.AddValve("AA", -3) },
			origin:  "AA",
			wantErr: "negative rate",
		},
		{
			name: "unreachable rewarding valve",
			build: func(n *Network[string]) {
				n.AddValve("AA", 0)
				n.AddValve("BB", 5, "AA")
			},
			origin:  "AA",
			wantErr: "valve BB cannot be reached from AA",
		},
		{
			name: "ok",
			build: func(n *Network[string]) {
				n.AddValve("AA", 0, "BB")
				n.AddValve("BB", 4, "AA")
				n.AddValve("CC", 0)
			},
			origin: "AA",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Network[string]
			tt.build(&n)
			err := n.Validate(tt.origin)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("Validate: %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsFirstProblemInOrder(t *testing.T) {
	var n Network[string]
	n.AddValve("AA", 0, "ZZ", "YY", "XX", "WW")
	n.AddValve("QQ", -1)
	n.AddValve("PP", -2)
	for i := 0; i < 20; i++ {
		if err := n.Validate("AA"); err == nil || !strings.Contains(err.Error(), "undeclared valve WW") {
			t.Fatalf("run %d: Validate = %v, want error about WW", i, err)
		}
	}

	var m Network[string]
	m.AddValve("AA", 0)
	for _, id := range []string{"MM", "KK", "LL", "JJ"} {
		m.AddValve(id, -1)
	}
	for i := 0; i < 20; i++ {
		if err := m.Validate("AA"); err == nil || !strings.Contains(err.Error(), "valve JJ") {
			t.Fatalf("run %d: Validate = %v, want error about JJ", i, err)
		}
	}
}
