package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// themeRegistry holds all built-in themes
var themeRegistry = map[string]Theme{
	"dark":    darkTheme,
	"gruvbox": gruvboxTheme,
	"nord":    nordTheme,
}

// GetThemeByName returns a theme by name.
// Returns ErrThemeNotFound if the theme doesn't exist.
func GetThemeByName(name string) (Theme, error) {
	if name == "" {
		return Theme{}, ErrThemeNameRequired
	}
	theme, ok := themeRegistry[name]
	if !ok {
		return Theme{}, ErrThemeNotFound
	}
	return theme, nil
}

// GetThemeByNameWithFallback returns a theme by name, falling back to the default
// theme if the requested theme doesn't exist.
func GetThemeByNameWithFallback(name string) Theme {
	theme, err := GetThemeByName(name)
	if err != nil {
		return GetDefaultTheme()
	}
	return theme
}

// GetDefaultTheme returns the default dark theme.
func GetDefaultTheme() Theme {
	return darkTheme
}

// ListAvailableThemes returns a sorted list of all available theme names.
func ListAvailableThemes() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var darkTheme = Theme{
	Name: "dark",

	Primary:   lipgloss.Color("33"),  // Blue - headers
	Secondary: lipgloss.Color("39"),  // Cyan - org/project info
	Accent:    lipgloss.Color("212"), // Magenta - keybindings

	Success: lipgloss.Color("42"),  // Green
	Warning: lipgloss.Color("214"), // Orange
	Error:   lipgloss.Color("196"), // Red

	Background:      lipgloss.Color("236"),
	Foreground:      lipgloss.Color("252"),
	ForegroundMuted: lipgloss.Color("243"),

	SelectForeground: lipgloss.Color("229"),
	SelectBackground: lipgloss.Color("57"),

	Border:  lipgloss.Color("240"),
	Spinner: lipgloss.Color("205"),
}

var gruvboxTheme = Theme{
	Name: "gruvbox",

	Primary:   lipgloss.Color("#458588"), // Blue
	Secondary: lipgloss.Color("#689d6a"), // Aqua
	Accent:    lipgloss.Color("#d3869b"), // Purple

	Success: lipgloss.Color("#b8bb26"),
	Warning: lipgloss.Color("#fabd2f"),
	Error:   lipgloss.Color("#fb4934"),

	Background:      lipgloss.Color("#282828"), // bg0
	Foreground:      lipgloss.Color("#ebdbb2"), // fg
	ForegroundMuted: lipgloss.Color("#928374"), // gray

	SelectForeground: lipgloss.Color("#fabd2f"),
	SelectBackground: lipgloss.Color("#504945"), // bg2

	Border:  lipgloss.Color("#504945"),
	Spinner: lipgloss.Color("#d3869b"),
}

var nordTheme = Theme{
	Name: "nord",

	Primary:   lipgloss.Color("#81a1c1"), // Nord9
	Secondary: lipgloss.Color("#88c0d0"), // Nord8
	Accent:    lipgloss.Color("#b48ead"), // Nord15

	Success: lipgloss.Color("#a3be8c"), // Nord14
	Warning: lipgloss.Color("#ebcb8b"), // Nord13
	Error:   lipgloss.Color("#bf616a"), // Nord11

	Background:      lipgloss.Color("#2e3440"), // Nord0
	Foreground:      lipgloss.Color("#eceff4"), // Nord6
	ForegroundMuted: lipgloss.Color("#4c566a"), // Nord3

	SelectForeground: lipgloss.Color("#eceff4"),
	SelectBackground: lipgloss.Color("#434c5e"), // Nord2

	Border:  lipgloss.Color("#4c566a"),
	Spinner: lipgloss.Color("#b48ead"),
}
