package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yildizm/reqlog/internal/parser"
)

// Theme represents a color theme for the viewer
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Severity colors
	Fatal   lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Debug   lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

// buildTheme creates a theme from [light, dark] color pairs
func buildTheme(name string, primary, secondary, fatal, errorColor, warning, info, debug, border, muted, highlight, selected [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   adaptive(primary),
		Secondary: adaptive(secondary),
		Fatal:     adaptive(fatal),
		Error:     adaptive(errorColor),
		Warning:   adaptive(warning),
		Info:      adaptive(info),
		Debug:     adaptive(debug),
		Border:    adaptive(border),
		Muted:     adaptive(muted),
		Highlight: adaptive(highlight),
		Selected:  adaptive(selected),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7F1D1D", "#F87171"},
		[2]string{"#DC2626", "#EF4444"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#0891B2", "#06B6D4"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#FEF3C7", "#78350F"}, [2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#800000", "#FF0000"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#0066CC", "#4499FF"},
		[2]string{"#444444", "#CCCCCC"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#FFFF00", "#444400"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#9B2C2C", "#FEB2B2"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#2B6CB0", "#63B3ED"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#F7FAFC", "#4A5568"}, [2]string{"#EDF2F7", "#2D3748"})
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		currentTheme = DefaultTheme
	case "high-contrast":
		currentTheme = HighContrastTheme
	case "minimal":
		currentTheme = MinimalTheme
	default:
		return false
	}
	return true
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// ApplyColorMode configures lipgloss for auto|always|never. NO_COLOR or
// noColor force plain output.
func ApplyColorMode(mode string, noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// Styles contains the styled components of the viewer
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Status    lipgloss.Style
	Muted     lipgloss.Style
	Divider   lipgloss.Style
	Highlight lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Popup      lipgloss.Style
	PopupTitle lipgloss.Style
	Error      lipgloss.Style

	levels map[parser.LogLevel]lipgloss.Style
}

// GetStyles builds the viewer styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Highlight: lipgloss.NewStyle().
			Background(theme.Highlight).
			Bold(true),

		ListItem: lipgloss.NewStyle(),

		ListSelected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		PopupTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		levels: map[parser.LogLevel]lipgloss.Style{
			parser.LevelFatal: lipgloss.NewStyle().Foreground(theme.Fatal).Bold(true),
			parser.LevelError: lipgloss.NewStyle().Foreground(theme.Error),
			parser.LevelWarn:  lipgloss.NewStyle().Foreground(theme.Warning),
			parser.LevelInfo:  lipgloss.NewStyle().Foreground(theme.Info),
			parser.LevelDebug: lipgloss.NewStyle().Foreground(theme.Debug),
		},
	}
}

// Level returns the style used for a severity level
func (s *Styles) Level(level parser.LogLevel) lipgloss.Style {
	if style, ok := s.levels[level]; ok {
		return style
	}
	return s.ListItem
}
