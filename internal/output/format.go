// Package output provides terminal output formatting for the pact-cli
// extension commands. It is kept dependency-light to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/YOU54F/pact-cli/internal/registry"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// ListRow is one rendered row of the extension listing.
type ListRow struct {
	Name             string
	Kind             registry.Kind
	InstalledVersion string
	LatestVersion    string
	Installed        bool
}

// PrintExtensionTable renders the extension listing as an aligned table,
// sorted by name for deterministic output.
func PrintExtensionTable(out io.Writer, rows []ListRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	header := []string{"NAME", "TYPE", "INSTALLED", "LATEST", "STATUS"}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		status := "not installed"
		if row.Installed {
			status = "installed"
		}
		table = append(table, []string{
			row.Name,
			kindLabel(row.Kind),
			row.InstalledVersion,
			row.LatestVersion,
			status,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range table {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(out, bold(formatRow(header, widths)))
	for i, row := range table {
		line := formatRow(row, widths)
		if rows[i].Installed {
			fmt.Fprintln(out, green(line))
		} else {
			fmt.Fprintln(out, faint(line))
		}
	}
}

func kindLabel(kind registry.Kind) string {
	switch kind {
	case registry.KindPactflowAI:
		return "PactFlow AI"
	case registry.KindRubyStandalone:
		return "Pact Legacy"
	case registry.KindExternal:
		return "External"
	default:
		return string(kind)
	}
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
	}
	return strings.TrimRight(sb.String(), " ")
}

// PrintStep prints a progress message for a lifecycle step.
func PrintStep(out io.Writer, message string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan("→"), message)
}

// PrintSuccess prints a completion message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a non-fatal warning message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}
