package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const usageWidth = 50

type usageLine struct {
	command     string
	description string
}

var (
	usageLines = []usageLine{
		{"lunatint generate -c <spec>", "Preview ramps for the given colors"},
		{"lunatint file <colors.json> -c <spec>", "Write ramps into a color-definition file"},
		{"lunatint doc <design.free> -c <spec>", "Write ramps into a Lunacy document"},
		{"lunatint init [path]", "Write a starter lunatint.yaml"},
		{"lunatint version", "Show version"},
		{"lunatint help", "Show help"},
	}

	flagLines = []usageLine{
		{"-c, --color <spec>", `"name:value[,step]" entries separated by ';'`},
		{"-i, --input <file>", "JSON or YAML request file"},
		{"--only <glob>", "Only apply matching color names"},
		{"-o, --out <path>", "Write to another path"},
		{"-n, --dry-run", "Print instead of writing"},
		{"-w, --watch", "Reapply when an input file changes"},
		{"-e, --emit", "Print Lunacy swatch objects (generate)"},
		{"-f, --force", "Overwrite an existing config (init)"},
		{"--config <path>", "Configuration file"},
		{"--log-level <level>", "trace, debug, info, warn or error"},
		{"--preview, --no-preview", "Toggle terminal swatches"},
	}

	exampleLines = []usageLine{
		{`lunatint generate -c "dark:#121212"`, "Preview a dark ramp"},
		{`lunatint file colors.json -c "pink:#FF00FF,300"`, "Anchor pink at step 300"},
		{`lunatint doc design.free -i brand.yaml`, "Sync a palette into a document"},
		{`lunatint file colors.json -i brand.yaml -w`, "Keep colors.json in sync"},
	}
)

// renderHelp renders usage, flags and examples
func renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderLines(usageLines, commandName),
		sectionHeader.Render("Flags:"),
		renderLines(flagLines, flagText),
		sectionHeader.Render("Examples:"),
		renderLines(exampleLines, exampleCode),
	) + "\n"
}

// renderVersion renders the title block only
func renderVersion() string {
	return RenderTitle() + "\n"
}

func renderLines(lines []usageLine, style lipgloss.Style) string {
	rendered := make([]string, 0, len(lines))

	for _, l := range lines {
		rendered = append(rendered, bodyMedium.Render(fmt.Sprintf("  %s %s", style.Width(usageWidth).Render(l.command), l.description)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
