package harness

import "slices"

// Summary counts outcomes overall and per tool.
type Summary struct {
	Total      int
	Passed     int
	Mismatched int
	Faulted    int
	Tools      []ToolSummary
}

// ToolSummary counts the outcomes of one hook.
type ToolSummary struct {
	Tool   string
	Total  int
	Passed int
}

// OK reports whether every outcome passed.
func (s Summary) OK() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Summarize tallies outcomes. Tools are listed in order of first appearance.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	idx := map[string]int{}
	for _, o := range outcomes {
		s.Total++
		switch {
		case o.Passed():
			s.Passed++
		case IsMismatch(o.Err):
			s.Mismatched++
		default:
			s.Faulted++
		}

		i, ok := idx[o.Scenario.Tool]
		if !ok {
			i = len(s.Tools)
			idx[o.Scenario.Tool] = i
			s.Tools = append(s.Tools, ToolSummary{Tool: o.Scenario.Tool})
		}
		s.Tools[i].Total++
		if o.Passed() {
			s.Tools[i].Passed++
		}
	}
	return s
}

// Failures returns the outcomes that did not pass.
func Failures(outcomes []Outcome) []Outcome {
	return slices.DeleteFunc(slices.Clone(outcomes), Outcome.Passed)
}
