package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeMFact(t *testing.T) {
	cfg := Default()
	cfg.MFact = 0.99
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for mfact out of [0.05, 0.95]")
	}
}

func TestValidateRejectsTooManyTags(t *testing.T) {
	cfg := Default()
	tags := make([]string, 26)
	for i := range tags {
		tags[i] = "x"
	}
	cfg.Tags = tags
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for >25 tags")
	}
}

func TestValidateRejectsUnknownLayout(t *testing.T) {
	cfg := Default()
	cfg.Layouts = append(cfg.Layouts, LayoutEntry{Symbol: "[?]", Name: "nonexistent"})
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for an unregistered layout name")
	}
}

func TestLoadWithMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/dynamd.toml")
	if err != nil {
		t.Fatalf("missing config file should not error, got %v", err)
	}
	if cfg.MFact != Default().MFact {
		t.Fatal("expected defaults when no config file is present")
	}
}
