package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, preferred
	colorYellow = lipgloss.Color("220") // Amber - warnings, primal
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	stylePrimal    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	stylePreferred = lipgloss.NewStyle().Foreground(colorGreen)
	styleSpacer    = lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Solutions
// =============================================================================

// renderPath renders a solution path with preferred aspects highlighted.
func renderPath(path []solver.Aspect, pref solver.Preferred) string {
	parts := make([]string, len(path))
	for i, a := range path {
		if pref.Contains(a) {
			parts[i] = stylePreferred.Render(a)
		} else {
			parts[i] = StyleValue.Render(a)
		}
	}
	return strings.Join(parts, StyleDim.Render(" "+iconArrow+" "))
}

// printStep prints one planned step as "a → b → c (weight)" with its cache
// status, or "No solution found".
func printStep(w io.Writer, step planner.Step, pref solver.Preferred) {
	if !step.Solution.Found() {
		printError(w, "%s  %s", StyleDim.Render(step.Problem.String()), "No solution found")
		return
	}
	status, style := iconFresh, styleComputed
	if step.Cached {
		status, style = iconCached, styleCached
	}
	fmt.Fprintf(w, "%s %s %s  %s\n",
		styleIconSuccess.Render(iconSuccess),
		renderPath(step.Solution.Path, pref),
		StyleNumber.Render("("+solver.FormatWeight(step.Solution.Weight)+")"),
		style.Render(status))
}

// printStats prints plan statistics on a single line.
func printStats(w io.Writer, stats planner.Stats) {
	parts := []string{
		fmt.Sprintf("%d problems", stats.Problems),
		fmt.Sprintf("%d cached", stats.CacheHits),
		stats.Duration.String(),
	}
	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	fmt.Fprintln(w, b.String())
}

// =============================================================================
// Tables
// =============================================================================

// aspectRow is one line of the aspects table.
type aspectRow struct {
	ID        string      `json:"id"`
	Kind      solver.Kind `json:"-"`
	Weight    float64     `json:"weight"`
	Recipe    []string    `json:"recipe,omitempty"`
	Title     string      `json:"name"`
	Preferred bool        `json:"preferred,omitempty"`
}

// renderAspectTable renders rows as a rounded lipgloss table.
func renderAspectTable(rows []aspectRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ASPECT", "WEIGHT", "RECIPE", "NAME").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(colorCyan)
			}
			if row < 0 || row >= len(rows) {
				return style
			}
			r := rows[row]
			switch {
			case col == 0 && r.Preferred:
				return style.Foreground(colorGreen)
			case col == 0 && r.Kind == solver.KindPrimal:
				return style.Foreground(colorYellow).Bold(true)
			case col == 1:
				return style.Foreground(colorCyan).Align(lipgloss.Right)
			case col == 2 || col == 3:
				return style.Foreground(colorGray)
			}
			return style
		})
	for _, r := range rows {
		recipe := "-"
		if len(r.Recipe) > 0 {
			recipe = strings.Join(r.Recipe, " + ")
		}
		t.Row(r.ID, solver.FormatWeight(r.Weight), recipe, r.Title)
	}
	return t.Render()
}
