package vrp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Solution is the final answer of one solve.
type Solution struct {
	RunID    string
	Instance string
	Elapsed  time.Duration
	Optimal  bool // always false for heuristic solves
	Cost     float64
	Routes   [][]int // customer ids per non-empty route, depot omitted
}

// WrappedRoutes returns every non-empty route as "0 c₁ … 0".
func (s *Solution) WrappedRoutes() []string {
	nonEmpty := lo.Filter(s.Routes, func(r []int, _ int) bool { return len(r) > 0 })

	return lo.Map(nonEmpty, func(r []int, _ int) string {
		parts := make([]string, 0, len(r)+2)
		parts = append(parts, strconv.Itoa(Depot))
		for _, c := range r {
			parts = append(parts, strconv.Itoa(c))
		}
		parts = append(parts, strconv.Itoa(Depot))

		return strings.Join(parts, " ")
	})
}

// WriteText writes the canonical solution text: "cost optimal" followed by
// one depot-wrapped line per non-empty route.
func (s *Solution) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	optimal := 0
	if s.Optimal {
		optimal = 1
	}
	fmt.Fprintf(bw, "%s %d\n", strconv.FormatFloat(s.Cost, 'f', -1, 64), optimal)
	for _, line := range s.WrappedRoutes() {
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}

// yamlSolution is the YAML document layout.
type yamlSolution struct {
	RunID    string  `yaml:"run_id,omitempty"`
	Instance string  `yaml:"instance"`
	Seconds  float64 `yaml:"elapsed_seconds"`
	Optimal  bool    `yaml:"optimal"`
	Cost     float64 `yaml:"cost"`
	Routes   [][]int `yaml:"routes,flow"`
}

// WriteYAML writes the solution as a YAML document; routes are depot-wrapped.
func (s *Solution) WriteYAML(w io.Writer) error {
	doc := yamlSolution{
		RunID:    s.RunID,
		Instance: s.Instance,
		Seconds:  s.Elapsed.Seconds(),
		Optimal:  s.Optimal,
		Cost:     s.Cost,
	}
	for _, r := range s.Routes {
		if len(r) == 0 {
			continue
		}
		wrapped := append(append([]int{Depot}, r...), Depot)
		doc.Routes = append(doc.Routes, wrapped)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("vrp: encode yaml: %w", err)
	}

	return enc.Close()
}

// Format selects a solution file encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// WriteFile writes the solution to path in the given format.
func (s *Solution) WriteFile(path string, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vrp: create solution file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("vrp: close solution file: %w", cerr)
		}
	}()

	switch format {
	case FormatYAML:
		return s.WriteYAML(f)
	case FormatText, "":
		return s.WriteText(f)
	default:
		return fmt.Errorf("vrp: unknown solution format %q", format)
	}
}

// summary is the one-line JSON record printed after a solve.
type summary struct {
	Instance string      `json:"Instance"`
	Time     string      `json:"Time"`
	Result   json.Number `json:"Result"`
	Solution string      `json:"Solution"`
}

// Summary renders the solution as a single JSON line:
//
//	{"Instance":"name","Time":"1.23","Result":456.78,"Solution":"0 1 2 0 0 3 0"}
//
// Time is elapsed seconds and Result the cost, both with two decimals.
func (s *Solution) Summary() string {
	b, err := json.Marshal(summary{
		Instance: s.Instance,
		Time:     strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 2, 64),
		Result:   json.Number(strconv.FormatFloat(s.Cost, 'f', 2, 64)),
		Solution: strings.Join(s.WrappedRoutes(), " "),
	})
	if err != nil {
		// only reachable with a non-finite cost
		return fmt.Sprintf(`{"Instance":%q,"Error":%q}`, s.Instance, err.Error())
	}

	return string(b)
}

// String implements fmt.Stringer via Summary.
func (s *Solution) String() string { return s.Summary() }
