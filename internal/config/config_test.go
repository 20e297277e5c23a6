package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DBName != "enem_prep" {
		t.Errorf("DBName = %s, want enem_prep", cfg.DBName)
	}
	if cfg.AnthropicEnabled {
		t.Error("AnthropicEnabled should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ANTHROPIC_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %s, want db.internal", cfg.DBHost)
	}
	if !cfg.AnthropicEnabled {
		t.Error("AnthropicEnabled = false, want true")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "localhost", DBPort: "5432", DBUser: "u",
		DBPassword: "p", DBName: "d", DBSSLMode: "disable",
	}
	want := "host=localhost port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoadScalesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scales.yaml")
	content := `
MT:
  score_mean: 520
  score_sd: 110
LC:
  theta_max: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	scales, err := LoadScales(path)
	if err != nil {
		t.Fatalf("LoadScales: %v", err)
	}

	mt, ok := scales["MT"]
	if !ok {
		t.Fatal("missing MT scale")
	}
	if mt.ScoreMean != 520 || mt.ScoreSD != 110 {
		t.Errorf("MT scale = %+v, want score mean 520 sd 110", mt)
	}
	// Omitted fields keep defaults.
	if mt.ThetaMin != -4 || mt.ThetaMax != 4 {
		t.Errorf("MT theta bounds = [%v, %v], want [-4, 4]", mt.ThetaMin, mt.ThetaMax)
	}

	lc := scales["LC"]
	if lc.ThetaMax != 5 {
		t.Errorf("LC ThetaMax = %v, want 5", lc.ThetaMax)
	}
	if lc.ScoreMean != 500 {
		t.Errorf("LC ScoreMean = %v, want default 500", lc.ScoreMean)
	}
}

func TestLoadScalesRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scales.yaml")
	content := `
CN:
  theta_sd: 0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadScales(path); err == nil {
		t.Fatal("expected error for non-positive theta_sd")
	}
}

func TestLoadScalesMissingFile(t *testing.T) {
	if _, err := LoadScales(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
