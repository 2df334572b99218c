package config

import "sort"

var Presets = map[string][]ChargeConfig{
	"empty": {},
	"single": {
		{X: 0, Y: 0, Sign: 1},
	},
	"dipole": {
		{X: -1, Y: 0, Sign: 1},
		{X: 1, Y: 0, Sign: -1},
	},
	"pair": {
		{X: -1, Y: 0, Sign: 1},
		{X: 1, Y: 0, Sign: 1},
	},
	"quadrupole": {
		{X: -1, Y: 1, Sign: 1},
		{X: 1, Y: 1, Sign: -1},
		{X: 1, Y: -1, Sign: 1},
		{X: -1, Y: -1, Sign: -1},
	},
}

// GetPreset returns the default config populated with the named scene, or
// nil when no such preset exists.
func GetPreset(name string) *Config {
	charges, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Charges = append([]ChargeConfig(nil), charges...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
