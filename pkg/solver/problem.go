package solver

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSpacer is the token a research line uses for an empty slot.
const DefaultSpacer Aspect = "hex"

// Problem asks for a walk of exactly Distance edges from Start to End.
type Problem struct {
	Start    Aspect `json:"start"`
	End      Aspect `json:"end"`
	Distance int    `json:"distance"`
}

// String returns a compact description such as "ignis→aer/2".
func (p Problem) String() string {
	return fmt.Sprintf("%s→%s/%d", p.Start, p.End, p.Distance)
}

// Solution is the result of one search. Path is nil when no walk of the
// requested length exists; Weight is then +Inf.
type Solution struct {
	Path   []Aspect
	Weight float64
}

// NoSolution returns the result for a problem without any walk.
func NoSolution() Solution {
	return Solution{Weight: math.Inf(1)}
}

// Found reports whether the solution carries a path.
func (s Solution) Found() bool { return s.Path != nil }

// String renders the path as "a → b → c (weight)", or "No solution found".
func (s Solution) String() string {
	if !s.Found() {
		return "No solution found"
	}
	return strings.Join(s.Path, " → ") + " (" + FormatWeight(s.Weight) + ")"
}

// FormatWeight prints a weight without trailing zeros.
func FormatWeight(w float64) string {
	if math.IsInf(w, 1) {
		return "∞"
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// solutionJSON is the wire form of a Solution. JSON cannot encode an
// infinite number, so a missing solution has a null weight.
type solutionJSON struct {
	Path   []Aspect `json:"path"`
	Weight *float64 `json:"weight"`
}

// MarshalJSON encodes the solution, writing null for both fields when no
// path was found.
func (s Solution) MarshalJSON() ([]byte, error) {
	if !s.Found() {
		return json.Marshal(solutionJSON{})
	}
	w := s.Weight
	return json.Marshal(solutionJSON{Path: s.Path, Weight: &w})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw solutionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Path == nil || raw.Weight == nil {
		*s = NoSolution()
		return nil
	}
	*s = Solution{Path: raw.Path, Weight: *raw.Weight}
	return nil
}

// Decompose splits a research line into problems. Consecutive real aspects
// are paired; the distance between them is 2 plus the number of spacer
// tokens in between, so even adjacent aspects need one intermediate hop.
// Spacers before the first real aspect or after the last are ignored.
//
// Decompose does not check that the aspects exist; the search reports
// unknown endpoints.
func Decompose(line []Aspect, spacer Aspect) []Problem {
	var (
		problems []Problem
		prev     Aspect
		havePrev bool
		spacers  int
	)
	for _, a := range line {
		if a == spacer {
			if havePrev {
				spacers++
			}
			continue
		}
		if havePrev {
			problems = append(problems, Problem{Start: prev, End: a, Distance: spacers + 2})
		}
		prev, havePrev, spacers = a, true, 0
	}
	return problems
}
