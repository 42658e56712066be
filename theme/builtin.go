package theme

// Built-in themes
var (
	// Default - uses terminal's native background, works with any terminal theme
	DefaultDark = &Theme{
		Name:          "default-dark",
		Dark:          true,
		TransparentBg: true,
		Foreground:    Hex("e0e0e0"),
		Dim:           Hex("808080"),
		Surface:       Hex("303030"),
		Highlight:     Hex("d7d700"), // yellow
		Positive:      Hex("5fd75f"), // green
		Accent:        Hex("5fd7d7"), // cyan
		Error:         Hex("d75f5f"),
		Warning:       Hex("d7af5f"),
		Success:       Hex("5fd75f"),
		Info:          Hex("5f87d7"),
		Gold:          Hex("ffd700"),
	}

	DefaultLight = &Theme{
		Name:       "default-light",
		Background: Hex("fafafa"),
		Foreground: Hex("1a1a1a"),
		Dim:        Hex("888888"),
		Surface:    Hex("e0e0e0"),
		Highlight:  Hex("b58900"), // darker yellow
		Positive:   Hex("2e7d32"), // green
		Accent:     Hex("00838f"), // teal
		Error:      Hex("c62828"),
		Warning:    Hex("f57c00"),
		Success:    Hex("2e7d32"),
		Info:       Hex("1565c0"),
		Gold:       Hex("b8860b"), // dark goldenrod
	}

	// Solarized - Ethan Schoonover's precision colors
	SolarizedDark = &Theme{
		Name:       "solarized-dark",
		Dark:       true,
		Background: Hex("002b36"), // base03
		Foreground: Hex("839496"), // base0
		Dim:        Hex("586e75"), // base01
		Surface:    Hex("073642"), // base02
		Highlight:  Hex("b58900"), // yellow
		Positive:   Hex("859900"), // green
		Accent:     Hex("2aa198"), // cyan
		Error:      Hex("dc322f"), // red
		Warning:    Hex("cb4b16"), // orange
		Success:    Hex("859900"),
		Info:       Hex("268bd2"), // blue
		Gold:       Hex("b58900"),
	}

	SolarizedLight = &Theme{
		Name:       "solarized-light",
		Background: Hex("fdf6e3"), // base3
		Foreground: Hex("657b83"), // base00
		Dim:        Hex("93a1a1"), // base1
		Surface:    Hex("eee8d5"), // base2
		Highlight:  Hex("b58900"),
		Positive:   Hex("859900"),
		Accent:     Hex("2aa198"),
		Error:      Hex("dc322f"),
		Warning:    Hex("cb4b16"),
		Success:    Hex("859900"),
		Info:       Hex("268bd2"),
		Gold:       Hex("b58900"),
	}

	// Nord - Arctic, north-bluish color palette
	Nord = &Theme{
		Name:       "nord",
		Dark:       true,
		Background: Hex("2e3440"), // nord0
		Foreground: Hex("d8dee9"), // nord4
		Dim:        Hex("4c566a"), // nord3
		Surface:    Hex("3b4252"), // nord1
		Highlight:  Hex("ebcb8b"), // nord13
		Positive:   Hex("a3be8c"), // nord14
		Accent:     Hex("88c0d0"), // nord8
		Error:      Hex("bf616a"), // nord11
		Warning:    Hex("d08770"), // nord12
		Success:    Hex("a3be8c"),
		Info:       Hex("81a1c1"), // nord9
		Gold:       Hex("ebcb8b"),
	}

	// Dracula - Dark theme with vivid colors
	Dracula = &Theme{
		Name:       "dracula",
		Dark:       true,
		Background: Hex("282a36"),
		Foreground: Hex("f8f8f2"),
		Dim:        Hex("6272a4"), // comment
		Surface:    Hex("44475a"), // current line
		Highlight:  Hex("f1fa8c"), // yellow
		Positive:   Hex("50fa7b"), // green
		Accent:     Hex("8be9fd"), // cyan
		Error:      Hex("ff5555"),
		Warning:    Hex("ffb86c"),
		Success:    Hex("50fa7b"),
		Info:       Hex("bd93f9"), // purple
		Gold:       Hex("f1fa8c"),
	}

	// Gruvbox - Retro groove color scheme
	GruvboxDark = &Theme{
		Name:       "gruvbox-dark",
		Dark:       true,
		Background: Hex("282828"), // bg
		Foreground: Hex("ebdbb2"), // fg
		Dim:        Hex("928374"), // gray
		Surface:    Hex("3c3836"), // bg1
		Highlight:  Hex("fabd2f"), // yellow
		Positive:   Hex("b8bb26"), // green
		Accent:     Hex("8ec07c"), // aqua
		Error:      Hex("fb4934"),
		Warning:    Hex("fe8019"),
		Success:    Hex("b8bb26"),
		Info:       Hex("83a598"), // blue
		Gold:       Hex("d79921"),
	}

	GruvboxLight = &Theme{
		Name:       "gruvbox-light",
		Background: Hex("fbf1c7"),
		Foreground: Hex("3c3836"),
		Dim:        Hex("928374"),
		Surface:    Hex("ebdbb2"),
		Highlight:  Hex("b57614"),
		Positive:   Hex("79740e"),
		Accent:     Hex("427b58"),
		Error:      Hex("9d0006"),
		Warning:    Hex("af3a03"),
		Success:    Hex("79740e"),
		Info:       Hex("076678"),
		Gold:       Hex("b57614"),
	}

	// Monokai - Classic dark theme
	Monokai = &Theme{
		Name:       "monokai",
		Dark:       true,
		Background: Hex("272822"),
		Foreground: Hex("f8f8f2"),
		Dim:        Hex("75715e"), // comment
		Surface:    Hex("3e3d32"), // line highlight
		Highlight:  Hex("e6db74"),
		Positive:   Hex("a6e22e"),
		Accent:     Hex("66d9ef"),
		Error:      Hex("f92672"),
		Warning:    Hex("fd971f"),
		Success:    Hex("a6e22e"),
		Info:       Hex("ae81ff"),
		Gold:       Hex("e6db74"),
	}
)

// All contains all known themes for iteration. Themes loaded from files are
// appended by Register.
var All = []*Theme{
	DefaultDark,
	DefaultLight,
	SolarizedDark,
	SolarizedLight,
	Nord,
	Dracula,
	GruvboxDark,
	GruvboxLight,
	Monokai,
}

// Current is the active theme.
var Current = DefaultDark

// currentIndex tracks position in All for cycling.
var currentIndex = 0

// Lookup finds a theme by name.
func Lookup(name string) (*Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Register adds a theme, replacing any theme with the same name.
func Register(t *Theme) {
	for i, existing := range All {
		if existing.Name == t.Name {
			All[i] = t
			if currentIndex == i {
				Current = t
			}
			return
		}
	}
	All = append(All, t)
}

// Set changes to a specific theme by name.
func Set(name string) bool {
	for i, t := range All {
		if t.Name == name {
			Current = t
			currentIndex = i
			return true
		}
	}
	return false
}

// Next cycles to the next theme.
func Next() *Theme {
	currentIndex = (currentIndex + 1) % len(All)
	Current = All[currentIndex]
	return Current
}

// Prev cycles to the previous theme.
func Prev() *Theme {
	currentIndex = (currentIndex - 1 + len(All)) % len(All)
	Current = All[currentIndex]
	return Current
}
