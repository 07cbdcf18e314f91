package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		s     Settings
		field string
	}{
		{Settings{SourceRate: 30, TargetRate: 30}, ""},
		{Settings{SourceRate: 0, TargetRate: 30}, "source_rate"},
		{Settings{SourceRate: 30, TargetRate: -1}, "target_rate"},
	}
	for _, test := range tests {
		err := test.s.Validate()
		if test.field == "" {
			if err != nil {
				t.Errorf("Validate(%+v)=%v; expected nil", test.s, err)
			}
			continue
		}
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) || cerr.Field != test.field {
			t.Errorf("Validate(%+v)=%v; expected ConfigurationError on %s", test.s, err, test.field)
		}
	}
}

func TestEffectiveTargetRate(t *testing.T) {
	if got := (Settings{SourceRate: 30, TargetRate: 60}).EffectiveTargetRate(); got != 30 {
		t.Errorf("clamped rate %d, expected 30", got)
	}
	if got := (Settings{SourceRate: 30, TargetRate: 10}).EffectiveTargetRate(); got != 10 {
		t.Errorf("rate %d, expected 10", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("source_rate: 60\ncenter_on_origin: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.SourceRate != 60 {
		t.Errorf("source_rate %d, expected 60", s.SourceRate)
	}
	if s.TargetRate != 30 {
		t.Errorf("target_rate %d, expected default 30", s.TargetRate)
	}
	if s.CenterOnOrigin {
		t.Error("center_on_origin should be overridden to false")
	}
}

func TestLoadFileBadRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("target_rate: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error")
	}
}
