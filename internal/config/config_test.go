package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"MAX_CALLNO_WORDS", "RESOLVE_TIMEOUT", "STATS_DISABLED", "RATE_LIMIT_MAX", "COLLATION_LANG"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.MaxCallNoWords != 10 {
		t.Errorf("MaxCallNoWords = %d, want 10", cfg.MaxCallNoWords)
	}
	if cfg.ResolveTimeout != 5*time.Second {
		t.Errorf("ResolveTimeout = %v, want 5s", cfg.ResolveTimeout)
	}
	if !cfg.StatsEnabled {
		t.Error("StatsEnabled = false, want true by default")
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if cfg.Collation != language.Finnish {
		t.Errorf("Collation = %v, want fi", cfg.Collation)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MAX_CALLNO_WORDS", "6")
	t.Setenv("RESOLVE_TIMEOUT", "250ms")
	t.Setenv("STATS_DISABLED", "1")
	t.Setenv("COLLATION_LANG", "sv")

	cfg := Load()
	if cfg.MaxCallNoWords != 6 {
		t.Errorf("MaxCallNoWords = %d, want 6", cfg.MaxCallNoWords)
	}
	if cfg.ResolveTimeout != 250*time.Millisecond {
		t.Errorf("ResolveTimeout = %v, want 250ms", cfg.ResolveTimeout)
	}
	if cfg.StatsEnabled {
		t.Error("StatsEnabled = true, want false")
	}
	if cfg.Collation != language.Swedish {
		t.Errorf("Collation = %v, want sv", cfg.Collation)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_CALLNO_WORDS", "-3")
	t.Setenv("RESOLVE_TIMEOUT", "soon")
	t.Setenv("COLLATION_LANG", "not a language")

	cfg := Load()
	if cfg.MaxCallNoWords != 10 {
		t.Errorf("MaxCallNoWords = %d, want fallback 10", cfg.MaxCallNoWords)
	}
	if cfg.ResolveTimeout != 5*time.Second {
		t.Errorf("ResolveTimeout = %v, want fallback 5s", cfg.ResolveTimeout)
	}
	if cfg.Collation != language.Finnish {
		t.Errorf("Collation = %v, want fallback fi", cfg.Collation)
	}
}

func TestLoadYAMLConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
defaults:
  locating_strategy: simple
owners:
  - code: main
    name: Main Library
    locating_strategy: basic
    preprocessing_redirects:
      - condition: '^OLD (\d+)$'
        operation: 'A $1'
    not_found_redirects:
      - condition: '^X-'
        operation: ''
        active: false
  - code: branch
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadYAMLConfigFile(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}

	mainOwner := cfg.GetOwnerByCode("main")
	if mainOwner == nil {
		t.Fatal("owner main not found")
	}
	if mainOwner.LocatingStrategy != "basic" {
		t.Errorf("main strategy = %q, want basic", mainOwner.LocatingStrategy)
	}
	if len(mainOwner.PreprocessingRedirects) != 1 || mainOwner.PreprocessingRedirects[0].Operation != "A $1" {
		t.Errorf("preprocessing redirects = %+v", mainOwner.PreprocessingRedirects)
	}
	if !mainOwner.PreprocessingRedirects[0].IsActive() {
		t.Error("redirect without active flag should be active")
	}
	if mainOwner.NotFoundRedirects[0].IsActive() {
		t.Error("redirect with active: false should be inactive")
	}

	branch := cfg.GetOwnerByCode("branch")
	if branch == nil || branch.LocatingStrategy != "simple" || branch.Name != "branch" {
		t.Errorf("branch = %+v, want defaults applied", branch)
	}
	if cfg.GetOwnerByCode("missing") != nil {
		t.Error("GetOwnerByCode() returned an owner for an unknown code")
	}
}

func TestLoadYAMLConfigFile_Missing(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil || cfg != nil {
		t.Errorf("LoadYAMLConfigFile() = %v, %v; want nil, nil", cfg, err)
	}
	var nilCfg *YAMLConfig
	if nilCfg.GetOwnerByCode("main") != nil {
		t.Error("nil config returned an owner")
	}
}
