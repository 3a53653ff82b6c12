// Package theme defines color themes for the pcalc dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles onto one palette.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // card and panel fill
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused dialogs
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Blue         lipgloss.Color
	Yellow       lipgloss.Color
	Magenta      lipgloss.Color
	Cyan         lipgloss.Color

	// Gain and Loss color the "(+N)" / "(-N)" change indicators.
	Gain lipgloss.Color
	Loss lipgloss.Color

	// Series is the rotation used for chart segments, one per visit type.
	Series []lipgloss.Color
}

// palette is the raw set of hues a theme is built from.
type palette struct {
	bg, surface, hover, border string
	dim, muted, text           string
	accent, accentBright       string
	green, orange, red, blue   string
	yellow, magenta, cyan      string
}

func build(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:         name,
		Background:   c(p.bg),
		Surface:      c(p.surface),
		SurfaceHover: c(p.hover),
		Border:       c(p.border),
		BorderAccent: c(p.accent),
		TextDim:      c(p.dim),
		TextMuted:    c(p.muted),
		TextPrimary:  c(p.text),
		Accent:       c(p.accent),
		AccentBright: c(p.accentBright),
		Green:        c(p.green),
		Orange:       c(p.orange),
		Red:          c(p.red),
		Blue:         c(p.blue),
		Yellow:       c(p.yellow),
		Magenta:      c(p.magenta),
		Cyan:         c(p.cyan),
		Gain:         c(p.green),
		Loss:         c(p.red),
		Series: []lipgloss.Color{
			c(p.blue), c(p.green), c(p.orange), c(p.magenta), c(p.yellow), c(p.cyan), c(p.red),
		},
	}
}

// FlexokiDark is the default: warm paper tones on near-black.
var FlexokiDark = build("flexoki-dark", palette{
	bg: "#100F0F", surface: "#1C1B1A", hover: "#282726", border: "#403E3C",
	dim: "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentBright: "#5BC8BE",
	green: "#879A39", orange: "#DA702C", red: "#D14D41", blue: "#4385BE",
	yellow: "#D0A215", magenta: "#CE5D97", cyan: "#24837B",
})

// FlexokiLight is the same palette on paper, for light terminals.
var FlexokiLight = build("flexoki-light", palette{
	bg: "#FFFCF0", surface: "#F2F0E5", hover: "#E6E4D9", border: "#DAD8CE",
	dim: "#B7B5AC", muted: "#6F6E69", text: "#100F0F",
	accent: "#24837B", accentBright: "#3AA99F",
	green: "#66800B", orange: "#BC5215", red: "#AF3029", blue: "#205EA6",
	yellow: "#AD8301", magenta: "#A02F6F", cyan: "#24837B",
})

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = build("catppuccin-mocha", palette{
	bg: "#1E1E2E", surface: "#313244", hover: "#45475A", border: "#585B70",
	dim: "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentBright: "#B4D0FB",
	green: "#A6E3A1", orange: "#FAB387", red: "#F38BA8", blue: "#89B4FA",
	yellow: "#F9E2AF", magenta: "#F5C2E7", cyan: "#94E2D5",
})

// TokyoNight is a cool blue and purple theme.
var TokyoNight = build("tokyo-night", palette{
	bg: "#1A1B26", surface: "#24283B", hover: "#343A52", border: "#565F89",
	dim: "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentBright: "#A9C1FF",
	green: "#9ECE6A", orange: "#FF9E64", red: "#F7768E", blue: "#7AA2F7",
	yellow: "#E0AF68", magenta: "#BB9AF7", cyan: "#7DCFFF",
})

// Terminal sticks to the ANSI 16 colors.
var Terminal = build("terminal", palette{
	bg: "0", surface: "0", hover: "8", border: "8",
	dim: "8", muted: "7", text: "15",
	accent: "6", accentBright: "14",
	green: "2", orange: "3", red: "1", blue: "4",
	yellow: "11", magenta: "5", cyan: "6",
})

// Active is the currently selected theme.
var Active = FlexokiDark

// All lists the themes in display order.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
