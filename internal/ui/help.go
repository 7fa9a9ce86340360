package ui

import (
	"strings"

	"adtables/internal/nav"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(view nav.View, width int) string {
	keys := []string{
		helpKey("j/k", "row"),
		helpKey("tab", "col"),
		helpKey("s/1-9", "sort"),
		helpKey("h/l", "page"),
	}
	switch view {
	case nav.ViewAccounts:
		keys = append(keys, helpKey("enter", "profiles"))
	case nav.ViewProfiles:
		keys = append(keys, helpKey("enter", "campaigns"), helpKey("b", "accounts"))
	case nav.ViewCampaigns:
		keys = append(keys, helpKey("b", "profiles"))
	}
	keys = append(keys, helpKey("?", "help"), helpKey("q", "quit"))
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Rows and columns"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"tab / shift+tab", "Cycle active column"},
		}),
		titleSection("Sorting"),
		helpSection([]helpItem{
			{"s", "Toggle sort on active column"},
			{"1-9", "Toggle sort on column n"},
			{"x", "Clear sort"},
		}),
		titleSection("Pages"),
		helpSection([]helpItem{
			{"l / → / ] / pgdown", "Next page"},
			{"h / ← / [ / pgup", "Previous page"},
			{"gg", "First page"},
			{"G", "Last page"},
		}),
		titleSection("Drill-down"),
		helpSection([]helpItem{
			{"enter", "Open profiles of account, campaigns of profile"},
			{"b / esc / backspace", "Back to parent table"},
			{"u / ctrl+r", "History back / forward"},
			{"H", "Accounts"},
		}),
		titleSection("General"),
		helpSection([]helpItem{
			{"?", "Toggle help"},
			{"q / ctrl+c", "Quit"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
