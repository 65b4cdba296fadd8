package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background:   "#0B0F14",
		Panel:        "#121821",
		Text:         "#E6EDF3",
		TextMuted:    "#8B9AAE",
		Border:       "#223043",
		Accent:       "#5B8DEF",
		Focus:        "#7AA2F7",
		Selected:     "#56D4B5",
		OutputBorder: "#3B4D66",
		Success:      "#3FB950",
		Warning:      "#D29922",
		Error:        "#F85149",
	},
}

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background:   "#000000",
		Panel:        "#0A0A0A",
		Text:         "#FFFFFF",
		TextMuted:    "#C0C0C0",
		Border:       "#FFFFFF",
		Accent:       "#00A2FF",
		Focus:        "#FFD400",
		Selected:     "#00FFD0",
		OutputBorder: "#FFFFFF",
		Success:      "#00FF5A",
		Warning:      "#FFB000",
		Error:        "#FF4040",
	},
}
