package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		// Semantic colors
		Primary:   "#cba6f7", // Mauve
		Secondary: "#b4befe", // Lavender

		// Background hierarchy
		BgBase:     "#1e1e2e", // Base
		BgMantle:   "#181825", // Mantle
		BgSurface0: "#313244", // Surface0
		BgSurface2: "#585b70", // Surface2

		// Foreground hierarchy
		FgMuted:  "#6c7086", // Overlay0
		FgSubtle: "#bac2de", // Subtext1
		FgBase:   "#cdd6f4", // Text

		Success: "#a6e3a1", // Green
	}
}
