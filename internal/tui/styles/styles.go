package styles

import "github.com/charmbracelet/lipgloss"

type Style struct {
	Color       Color
	Doc         lipgloss.Style
	TitleBar    lipgloss.Style
	SubtitleBar lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Table       lipgloss.Style
	Spinner     lipgloss.Style
	Podium      [3]lipgloss.Style
	Subtle      lipgloss.Style
}

type Color struct {
	Red               lipgloss.Color
	Gold              lipgloss.Color
	Silver            lipgloss.Color
	Bronze            lipgloss.Color
	FiaBlue           lipgloss.Color
	Light             lipgloss.Color
	Dark              lipgloss.Color
	Subtle            lipgloss.AdaptiveColor
	PrimaryForeground lipgloss.AdaptiveColor
}

func Default() *Style {
	red := lipgloss.Color("#CF040E")
	gold := lipgloss.Color("#FAD105")
	silver := lipgloss.Color("#D4DFE8")
	bronze := lipgloss.Color("#F77C14")
	fiaBlue := lipgloss.Color("#0B203B")
	light := lipgloss.Color("#D1D4DD")
	dark := lipgloss.Color("#383838")
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	primaryForeground := lipgloss.AdaptiveColor{Light: "#383838", Dark: "#D9DCCF"}

	tab := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtle).
		Foreground(subtle).
		Padding(0, 2)

	return &Style{
		Color: Color{
			// F1 colors
			Red:     red,
			Gold:    gold,
			Silver:  silver,
			Bronze:  bronze,
			FiaBlue: fiaBlue,
			// Thematic colors
			Light:             light,
			Dark:              dark,
			Subtle:            subtle,
			PrimaryForeground: primaryForeground,
		},
		Doc: lipgloss.NewStyle().Margin(1, 1),
		// header styles
		TitleBar: lipgloss.NewStyle().
			Align(lipgloss.Center).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(primaryForeground).
			Foreground(primaryForeground),
		SubtitleBar: lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(primaryForeground),
		// session tabs
		Tab:       tab,
		ActiveTab: tab.BorderForeground(red).Foreground(primaryForeground).Bold(true),
		// shown in place of a table without rows
		Placeholder: lipgloss.NewStyle().
			AlignVertical(lipgloss.Center).
			Background(dark).
			Foreground(light).
			Padding(1, 2),
		Error:   lipgloss.NewStyle().Foreground(red).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(subtle),
		Table:   lipgloss.NewStyle().AlignHorizontal(lipgloss.Left).BorderForeground(subtle),
		Spinner: lipgloss.NewStyle().Foreground(red),
		Podium: [3]lipgloss.Style{
			lipgloss.NewStyle().Foreground(gold).Bold(true),
			lipgloss.NewStyle().Foreground(silver).Bold(true),
			lipgloss.NewStyle().Foreground(bronze).Bold(true),
		},
		Subtle: lipgloss.NewStyle().Foreground(subtle),
	}
}
