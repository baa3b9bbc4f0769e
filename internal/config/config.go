// Package config is dynamd's ambient configuration layer. spec.md §6
// specifies the contents as static, compile-time tables (fonts, colors,
// mfact, nmaster, tags, autostart, rules, layouts, keys, buttons);
// Default() returns exactly those values translated from
// original_source/src/config.h as Go literals, so a from-scratch run with
// no config file behaves identically to the original. Load() overlays an
// optional TOML file on top of those defaults via viper, giving the
// static-table component an idiomatic Go home without changing its
// observable contract.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/loannaflip/dynamd/internal/layout"
	"github.com/loannaflip/dynamd/internal/rules"
	"github.com/spf13/viper"
)

// ColorScheme is the {fg,bg,border} triple dynamd.c's colors[][3] encodes
// per scheme index (SchemeNorm, SchemeSel).
type ColorScheme struct {
	Fg, Bg, Border string
}

// LayoutEntry pairs a bar symbol with the registered Arrange function name
// (config.h's Layout{symbol, arrange} table; the nil arrange / "floating"
// sentinel is layout.ByName["floating"]).
type LayoutEntry struct {
	Symbol string
	Name   string // key into layout.ByName
}

// KeyBinding mirrors config.h's Key{mod, keysym, func, arg} rows. Action
// names are resolved against the wm package's action table at startup.
type KeyBinding struct {
	Mod    string // e.g. "Mod4" (SUPER), combined with "+Shift", "+Control"
	Key    string // X keysym name, e.g. "Return", "Left", "1".."9"
	Action string
	ArgI   int
	ArgF   float64
	ArgV   []string
}

// ButtonBinding mirrors config.h's Button{click, mask, button, func, arg}.
type ButtonBinding struct {
	Click  string // ClkLtSymbol, ClkTagBar, ClkStatusText, ClkClientWin, ClkTabBar
	Mod    string
	Button string // Button1/2/3
	Action string
	ArgI   int
}

// Config is the full static-configuration surface spec.md §6 requires.
type Config struct {
	Fonts        []string
	Colors       map[string]ColorScheme // "norm", "sel"
	MFact        float64
	NMaster      int
	Tags         []string
	Autostart    [][]string
	Rules        []rules.Rule
	Layouts      []LayoutEntry
	Keys         []KeyBinding
	Buttons      []ButtonBinding
	BorderWidth  int
	GapInnerH    int
	GapInnerV    int
	GapOuterH    int
	GapOuterV    int
	SnapDistance int // mouse move/resize edge-snap threshold, §4.10
}

// TagCount returns the active number of tags, bounded by model.MaxTags by
// Validate.
func (c *Config) TagCount() int { return len(c.Tags) }

// Validate enforces the NumTags compile-time assertion's runtime
// equivalent and basic sanity on mfact/nmaster (spec.md §3 invariant 5).
func (c *Config) Validate() error {
	const maxTags = 25
	if len(c.Tags) == 0 || len(c.Tags) > maxTags {
		return fmt.Errorf("config: tag count %d out of range (1..%d)", len(c.Tags), maxTags)
	}
	if c.MFact < 0.05 || c.MFact > 0.95 {
		return fmt.Errorf("config: mfact %f out of range [0.05, 0.95]", c.MFact)
	}
	if c.NMaster < 0 {
		return fmt.Errorf("config: nmaster must be >= 0")
	}
	if len(c.Layouts) == 0 {
		return fmt.Errorf("config: layout table must not be empty")
	}
	for _, l := range c.Layouts {
		if l.Name != "" {
			if _, ok := layout.ByName[l.Name]; !ok {
				return fmt.Errorf("config: unknown layout %q", l.Name)
			}
		}
	}
	return nil
}

// Default returns the static configuration translated 1:1 from
// original_source/src/config.h.
func Default() *Config {
	tags := make([]string, 25)
	for i := range tags {
		tags[i] = fmt.Sprintf("%d", i+1)
	}

	return &Config{
		Fonts: []string{"MonoLisa:size=15"},
		Colors: map[string]ColorScheme{
			"norm": {Fg: "#ababab", Bg: "#222222", Border: "#222222"},
			"sel":  {Fg: "#eeeeee", Bg: "#222222", Border: "#ff4545"},
		},
		MFact:       0.56,
		NMaster:     1,
		Tags:        tags,
		BorderWidth: 1,

		Autostart: [][]string{
			{"sh", "-c", filepath.Join("$HOME", "dynamd", "startup", "startup.sh")},
		},

		Rules: []rules.Rule{
			{Class: "Alacritty", IsTerminal: true, Monitor: -1},
			{Title: "Event Tester", NoSwallow: true, Monitor: -1},
		},

		Layouts: []LayoutEntry{
			{Symbol: "[|W|]", Name: "centeredmaster"},
			{Symbol: "[M]", Name: "monocle"},
			{Symbol: "[T]", Name: "tile"},
			{Symbol: "[D]", Name: "deck"},
			{Symbol: "[@~]", Name: "dwindle"},
			{Symbol: "[~@]", Name: "spiral"},
			{Symbol: "[G]", Name: "grid"},
			{Symbol: "[GH]", Name: "horizgrid"},
			{Symbol: "[:G:]", Name: "gaplessgrid"},
			{Symbol: "[TTT]", Name: "bstack"},
			{Symbol: "[===]", Name: "bstackhoriz"},
			{Symbol: "[|=|]", Name: "centeredfloatingmaster"},
			{Symbol: "[=]", Name: "floating"},
		},

		Keys: []KeyBinding{
			{Mod: "Mod4", Key: "Return", Action: "spawn", ArgV: []string{"alacritty"}},
			{Mod: "Mod4", Key: "space", Action: "spawn", ArgV: []string{"flameshot", "gui"}},
			{Mod: "Mod4", Key: "d", Action: "spawn", ArgV: []string{"dmenu_run"}},
			{Mod: "Mod4", Key: "r", Action: "spawn", ArgV: []string{"rofi", "-modi", "drun", "-show", "drun"}},
			{Mod: "Mod4", Key: "e", Action: "spawn", ArgV: []string{"pcmanfm"}},

			{Mod: "Mod4", Key: "Right", Action: "focusstack", ArgI: 1},
			{Mod: "Mod4", Key: "Left", Action: "focusstack", ArgI: -1},

			{Mod: "Mod4+Shift", Key: "Right", Action: "movestack", ArgI: 1},
			{Mod: "Mod4+Shift", Key: "Left", Action: "movestack", ArgI: -1},

			{Mod: "Mod4+Control", Key: "Right", Action: "setmfact", ArgF: 0.05},
			{Mod: "Mod4+Control", Key: "Left", Action: "setmfact", ArgF: -0.05},

			{Mod: "Mod4", Key: "equal", Action: "gaps", ArgI: 1},
			{Mod: "Mod4", Key: "minus", Action: "gaps", ArgI: -1},

			{Mod: "Mod4+Control", Key: "period", Action: "focusmon", ArgI: 1},
			{Mod: "Mod4+Control", Key: "comma", Action: "focusmon", ArgI: -1},

			{Mod: "Mod4+Shift", Key: "period", Action: "tagmon", ArgI: 1},
			{Mod: "Mod4+Shift", Key: "comma", Action: "tagmon", ArgI: -1},

			{Mod: "Mod4+Shift", Key: "Return", Action: "zoom"},
			{Mod: "Mod4", Key: "f", Action: "togglefullscr"},
			{Mod: "Mod4", Key: "q", Action: "killclient"},
			{Mod: "Mod4", Key: "b", Action: "togglebar"},
			{Mod: "Mod4", Key: "g", Action: "togglegaps"},
			{Mod: "Mod4+Shift", Key: "f", Action: "togglefloating"},

			{Mod: "Mod4", Key: "s", Action: "shiftview", ArgI: 1},
			{Mod: "Mod4", Key: "a", Action: "shiftview", ArgI: -1},

			{Mod: "Mod4+Shift", Key: "r", Action: "organizetags"},

			{Mod: "Mod4", Key: "x", Action: "cyclelayout", ArgI: 1},
			{Mod: "Mod4", Key: "z", Action: "cyclelayout", ArgI: -1},

			{Mod: "Mod4", Key: "Tab", Action: "view"},
			{Mod: "Mod4", Key: "0", Action: "view", ArgI: -1}, // ArgI<0 signals "all tags" (~0)
		},

		Buttons: []ButtonBinding{
			{Click: "ClkLtSymbol", Button: "Button1", Action: "setlayout", ArgI: 0},
			{Click: "ClkLtSymbol", Button: "Button3", Action: "setlayout", ArgI: 12}, // layouts[12] = floating
			{Click: "ClkClientWin", Mod: "Mod4", Button: "Button1", Action: "movemouse"},
			{Click: "ClkClientWin", Mod: "Mod4", Button: "Button2", Action: "togglefloating"},
			{Click: "ClkClientWin", Mod: "Mod4", Button: "Button3", Action: "resizemouse"},
			{Click: "ClkTagBar", Button: "Button1", Action: "view"},
			{Click: "ClkTagBar", Button: "Button3", Action: "toggleview"},
			{Click: "ClkTagBar", Mod: "Mod4", Button: "Button1", Action: "tag"},
			{Click: "ClkTagBar", Mod: "Mod4", Button: "Button3", Action: "toggletag"},
			{Click: "ClkTabBar", Button: "Button1", Action: "focuswin"},
		},

		GapInnerH: 10, GapInnerV: 10, GapOuterH: 10, GapOuterV: 10,
		SnapDistance: 32,
	}
}

// Load reads path (if it exists) via viper/BurntSushi-toml and overlays it
// on top of Default(); a missing file is not an error (spec.md's "no
// flags" CLI still runs with the compiled-in defaults).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, cfg.Validate()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if v.IsSet("mfact") {
		cfg.MFact = v.GetFloat64("mfact")
	}
	if v.IsSet("nmaster") {
		cfg.NMaster = v.GetInt("nmaster")
	}
	if v.IsSet("tags") {
		if tags := v.GetStringSlice("tags"); len(tags) > 0 {
			cfg.Tags = tags
		}
	}
	if v.IsSet("gaps.inner_h") {
		cfg.GapInnerH = v.GetInt("gaps.inner_h")
	}
	if v.IsSet("gaps.inner_v") {
		cfg.GapInnerV = v.GetInt("gaps.inner_v")
	}
	if v.IsSet("gaps.outer_h") {
		cfg.GapOuterH = v.GetInt("gaps.outer_h")
	}
	if v.IsSet("gaps.outer_v") {
		cfg.GapOuterV = v.GetInt("gaps.outer_v")
	}
	if v.IsSet("border_width") {
		cfg.BorderWidth = v.GetInt("border_width")
	}

	return cfg, cfg.Validate()
}

// EnsureUserConfig copies a bundled default config to dst the first time
// dynamd runs with no user file present, using the teacher's
// CopyFileContents bootstrap idiom (store/fileutil.go).
func EnsureUserConfig(bundledDefault, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return copyFileContents(bundledDefault, dst, 0o644)
}
