package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hookwrap/hookwrap/internal/harness"
	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Output styles.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(cliBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cliPrimary.Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func renderToolTable(tools []*hook.Tool) string {
	t := newTable("HOOK", "KIND", "EXIT POLICY", "DEFAULT ARGS")
	for _, tool := range tools {
		var defaults []string
		for _, d := range tool.Defaults {
			defaults = append(defaults, d.Args...)
		}
		t.Row(tool.ID, tool.Kind.String(), tool.Policy.String(), strings.Join(defaults, " "))
	}
	return t.Render()
}

func renderScenarioTable(scenarios []scenario.Scenario) string {
	t := newTable("#", "HOOK", "FILES", "ARGS", "CODE")
	for i, s := range scenarios {
		files := make([]string, len(s.Files))
		for j, f := range s.Files {
			files[j] = strings.TrimPrefix(f, scenario.TestDir+"/")
		}
		t.Row(fmt.Sprint(i+1), s.Tool, strings.Join(files, " "), strings.Join(s.Args, " "), fmt.Sprint(s.ExpectedCode))
	}
	return t.Render()
}

// renderSummary draws the result card of a verify run.
func renderSummary(sum harness.Summary, versions map[string]string) string {
	var title string
	switch {
	case sum.OK():
		title = cliSuccess.Render("✓") + " " + fmt.Sprintf("%d/%d scenario runs passed", sum.Passed, sum.Total)
	case sum.Total == 0:
		title = cliWarn.Render("!") + " no scenarios ran"
	default:
		title = cliError.Render("✗") + " " + fmt.Sprintf("%d/%d scenario runs passed", sum.Passed, sum.Total)
	}

	var body strings.Builder
	body.WriteString(title)
	if sum.Mismatched > 0 || sum.Faulted > 0 {
		fmt.Fprintf(&body, "\n%s", cliMuted.Render(fmt.Sprintf("%d mismatched, %d harness faults", sum.Mismatched, sum.Faulted)))
	}
	if len(sum.Tools) > 0 {
		body.WriteString("\n")
	}
	for _, ts := range sum.Tools {
		mark := cliSuccess.Render("✓")
		if ts.Passed != ts.Total {
			mark = cliError.Render("✗")
		}
		line := fmt.Sprintf("\n%s %-22s %d/%d", mark, ts.Tool, ts.Passed, ts.Total)
		if v := versions[ts.Tool]; v != "" {
			line += " " + cliMuted.Render(v)
		}
		body.WriteString(line)
	}
	return cardStyle().Render(body.String())
}

// renderFailure formats one failed outcome for the detail listing.
func renderFailure(o harness.Outcome) string {
	head := cliError.Render("FAIL") + " " + o.Scenario.Name()
	if o.Strategy != "" {
		head += cliMuted.Render(" [" + o.Strategy + "]")
	}
	return head + "\n" + indent(o.Err.Error(), "    ")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
