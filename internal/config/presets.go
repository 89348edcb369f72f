package config

import "sort"

func preset(k, d float64, layout Layout) *Config {
	cfg := DefaultConfig()
	cfg.Spring = SpringConfig{Stiffness: k, Damping: d}
	cfg.Layout = layout
	return cfg
}

func splitLayout() Layout {
	l := DefaultLayout()
	l.OffsetP1 = Offset{X: -DefaultOffsetX, Y: -80}
	l.OffsetP2 = Offset{X: DefaultOffsetX, Y: 80}
	return l
}

// Presets holds named configurations. "classic" places the interior targets
// either side of the pointer; "split" also pushes P1 above and P2 below it.
var Presets = map[string]*Config{
	"classic": preset(DefaultStiffness, DefaultDamping, DefaultLayout()),
	"split":   preset(0.08, 0.5, splitLayout()),
	"loose":   preset(0.02, 0.3, DefaultLayout()),
	"stiff":   preset(0.18, 0.7, DefaultLayout()),
	"jelly":   preset(0.1, 0.1, DefaultLayout()),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
