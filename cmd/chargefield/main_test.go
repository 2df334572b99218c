package main

import (
	"errors"
	"testing"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/config"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/trace"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Point
		wantErr bool
	}{
		{"1,2", geom.Pt(1, 2), false},
		{" -0.5 , 3.25 ", geom.Pt(-0.5, 3.25), false},
		{"1", geom.Point{}, true},
		{"1,2,3", geom.Point{}, true},
		{"a,2", geom.Point{}, true},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePoint(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseCharge(t *testing.T) {
	got, err := parseCharge("1,-2,+1")
	if err != nil {
		t.Fatal(err)
	}
	if want := (config.ChargeConfig{X: 1, Y: -2, Sign: 1}); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if _, err := parseCharge("0,0,2"); !errors.Is(err, charge.ErrInvalidSign) {
		t.Errorf("expected ErrInvalidSign, got %v", err)
	}
	if _, err := parseCharge("0,0"); err == nil {
		t.Error("expected error for missing sign")
	}
}

func TestTraceKinds(t *testing.T) {
	kinds, err := traceKinds("both")
	if err != nil || len(kinds) != 2 {
		t.Errorf("expected both kinds, got %v (%v)", kinds, err)
	}
	kinds, err = traceKinds("equipotential")
	if err != nil || len(kinds) != 1 || kinds[0] != trace.Equipotential {
		t.Errorf("expected equipotential, got %v (%v)", kinds, err)
	}
	if _, err := traceKinds("spiral"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadConfigPresetAndCharges(t *testing.T) {
	preset, configFile, charges = "dipole", "", []string{"0,1,-1"}
	defer func() { preset, charges = "", nil }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Charges) != 3 {
		t.Errorf("expected 3 charges, got %d", len(cfg.Charges))
	}

	preset = "missing"
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown preset")
	}
}
