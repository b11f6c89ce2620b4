// Package valves finds the activation schedule that releases the most
// pressure from a network of valves within a time limit, for one agent or
// for an agent and a helper working side by side.
//
// It also carries the small puzzle harness (forked from maisem/aoc) used by
// cmd/valves to load input, check sample answers and print results.
package valves

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"
)

type sample struct {
	input string
	want  string
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

func parseSample(comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	m := sampleRx.FindStringSubmatch(text)
	if m == nil {
		return sample{}, false
	}
	return sample{want: m[1], input: m[2]}, true
}

// extractSamples returns the samples declared in the doc comments of the
// methods in src, keyed by method name. A sample without input reuses the
// input of the previous one.
func extractSamples(src []byte) map[string]sample {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "main.go", src, parser.ParseComments)
	if err != nil {
		log.Fatalf("parsing source to extract samples: %v", err)
	}
	var lastInput string
	samples := make(map[string]sample)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if s, ok := parseSample(c.Text); ok {
				s.input = Or(s.input, lastInput)
				samples[fd.Name.Name] = s
				lastInput = s.input
				break
			}
		}
	}
	return samples
}

// Puzzle is embedded by solvers and gives them access to the input.
type Puzzle struct {
	Year, Day  int
	SampleMode bool

	part    part
	samples map[string]sample
}

func (p *Puzzle) Input() []byte {
	if p.SampleMode {
		return []byte(p.Sample().input)
	}
	if flagInput != "" {
		return MustGet(os.ReadFile(flagInput))
	}
	return fileOrFetch(fmt.Sprintf("%d/%d.input", p.Year, p.Day), fmt.Sprintf("https://adventofcode.com/%d/day/%d/input", p.Year, p.Day))
}

func (p *Puzzle) Reader() io.Reader {
	return bytes.NewReader(p.Input())
}

func (p *Puzzle) Debugf(format string, args ...any) {
	if flagDebug && p.SampleMode {
		fmt.Printf(format+"\n", args...)
	}
}

func (p *Puzzle) Sample() sample {
	s, ok := p.samples[p.part.Name]
	if !ok {
		log.Fatalf("no sample found for %v", p.part.Name)
	}
	return s
}

type part struct {
	fn   func() any
	Num  string
	Name string
}

// extractParts returns the methods of x named P{part}, sorted by part.
func extractParts(x any) []part {
	rx := regexp.MustCompile(`^P(\d+)$`)
	v := reflect.ValueOf(x).Elem()
	if v.Kind() != reflect.Struct {
		log.Fatalf("Run: got %T; want pointer to struct", x)
	}
	vt := v.Type()
	var parts []part
	for i := 0; i < vt.NumMethod(); i++ {
		mn := vt.Method(i).Name
		m := rx.FindStringSubmatch(mn)
		if m == nil {
			continue
		}
		fn, ok := v.Method(i).Interface().(func() any)
		if !ok {
			log.Fatalf("method %s: want func() any", mn)
		}
		parts = append(parts, part{fn: fn, Num: m[1], Name: mn})
	}
	slices.SortFunc(parts, func(a, b part) int {
		return Int(a.Num) - Int(b.Num)
	})
	return parts
}

var (
	flagPart       string
	flagInput      string
	flagDebug      bool
	flagOnlySample bool
	flagSkipSample bool
)

func init() {
	flag.StringVar(&flagPart, "part", "", "part to run")
	flag.StringVar(&flagInput, "input", "", "read input from this file instead of the cached download")
	flag.BoolVar(&flagOnlySample, "sample", false, "only run sample")
	flag.BoolVar(&flagSkipSample, "skip-sample", false, "skip sample")
	flag.BoolVar(&flagDebug, "debug", false, "debug mode")
}

var initFlags = sync.OnceFunc(flag.Parse)

// Run runs every part of slvr, first against its sample and then against
// the real input. slvr must be a pointer to a struct embedding *Puzzle;
// src is the solver's source, from which samples are read.
func Run(year, day int, src []byte, slvr any) {
	initFlags()
	p := &Puzzle{
		Year:    year,
		Day:     day,
		samples: extractSamples(src),
	}
	reflect.ValueOf(slvr).Elem().FieldByName("Puzzle").Set(reflect.ValueOf(p))
	for _, pt := range extractParts(slvr) {
		if flagPart != "" && pt.Num != flagPart {
			continue
		}
		p.part = pt
		for _, sm := range []bool{true, false} {
			if !sm && flagOnlySample || sm && flagSkipSample {
				continue
			}
			p.SampleMode = sm
			if !sm {
				// Prime the input.
				p.Input()
			}
			t0 := time.Now()
			got := pt.fn()
			if !sm {
				fmt.Printf("part %s: %v (took %v)\n", pt.Num, got, time.Since(t0).Round(time.Microsecond))
				continue
			}
			if want := p.Sample().want; fmt.Sprint(got) != want {
				fmt.Printf("part %s: %v ❌; want %v\n", pt.Num, got, want)
				return
			}
			fmt.Printf("part %s sample: %v ✅ (%v)\n", pt.Num, got, time.Since(t0).Round(time.Microsecond))
		}
	}
}

var session = sync.OnceValue(func() string {
	return strings.TrimSpace(string(MustGet(os.ReadFile(filepath.Join(os.Getenv("HOME"), "keys", "aoc.session")))))
})

func fileOrFetch(filename, url string) []byte {
	if f, err := os.ReadFile(filename); err == nil {
		return f
	}
	body := fetch(url)
	MustDo(os.MkdirAll(filepath.Dir(filename), 0700))
	MustDo(os.WriteFile(filename, body, 0644))
	return body
}

func fetch(url string) []byte {
	req := MustGet(http.NewRequest("GET", url, nil))
	req.AddCookie(&http.Cookie{Name: "session", Value: session()})
	res := MustGet(http.DefaultClient.Do(req))
	defer res.Body.Close()
	if res.StatusCode != 200 {
		log.Fatalf("bad status fetching %s: %v", url, res.Status)
	}
	return MustGet(io.ReadAll(res.Body))
}
