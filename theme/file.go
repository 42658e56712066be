package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileTheme is the TOML shape of a theme file. Colors are hex strings;
// missing colors are inherited from the theme named by Base.
type fileTheme struct {
	Name          string `toml:"name"`
	Base          string `toml:"base"`
	Dark          *bool  `toml:"dark"`
	TransparentBg *bool  `toml:"transparent_bg"`

	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Surface    string `toml:"surface"`
	Highlight  string `toml:"highlight"`
	Positive   string `toml:"positive"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
	Warning    string `toml:"warning"`
	Success    string `toml:"success"`
	Info       string `toml:"info"`
	Gold       string `toml:"gold"`
}

// LoadFile reads a theme from a TOML file. The theme name defaults to the
// file name without its extension.
func LoadFile(path string) (*Theme, error) {
	var ft fileTheme
	if _, err := toml.DecodeFile(path, &ft); err != nil {
		return nil, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	if ft.Name == "" {
		ft.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	base := DefaultDark
	if ft.Base != "" {
		b, ok := Lookup(ft.Base)
		if !ok {
			return nil, fmt.Errorf("theme %s: unknown base theme %q", ft.Name, ft.Base)
		}
		base = b
	}

	t := *base
	t.Name = ft.Name
	if ft.Dark != nil {
		t.Dark = *ft.Dark
	}
	if ft.TransparentBg != nil {
		t.TransparentBg = *ft.TransparentBg
	}

	colors := []struct {
		key string
		val string
		dst *Color
	}{
		{"background", ft.Background, &t.Background},
		{"foreground", ft.Foreground, &t.Foreground},
		{"dim", ft.Dim, &t.Dim},
		{"surface", ft.Surface, &t.Surface},
		{"highlight", ft.Highlight, &t.Highlight},
		{"positive", ft.Positive, &t.Positive},
		{"accent", ft.Accent, &t.Accent},
		{"error", ft.Error, &t.Error},
		{"warning", ft.Warning, &t.Warning},
		{"success", ft.Success, &t.Success},
		{"info", ft.Info, &t.Info},
		{"gold", ft.Gold, &t.Gold},
	}
	for _, c := range colors {
		if c.val == "" {
			continue
		}
		parsed, ok := ParseHex(c.val)
		if !ok {
			return nil, fmt.Errorf("theme %s: invalid color %s = %q", t.Name, c.key, c.val)
		}
		*c.dst = parsed
	}
	if ft.Background != "" && ft.TransparentBg == nil {
		t.TransparentBg = false
	}

	return &t, nil
}

// LoadDir registers every *.toml theme in dir. A missing directory is not an
// error. Files that fail to parse are returned together.
func LoadDir(dir string) ([]*Theme, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var loaded []*Theme
	var errs []error
	for _, name := range names {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		Register(t)
		loaded = append(loaded, t)
	}
	return loaded, errors.Join(errs...)
}
