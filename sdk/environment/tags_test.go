package environment_test

import (
	"testing"
	"time"

	"github.com/jharlan/tasklane/sdk/environment"
)

type testConfig struct {
	Name     string        `env:"NAME" default:"tasklane"`
	Port     int           `env:"PORT" default:"8080"`
	Debug    bool          `env:"DEBUG" default:"false"`
	Timeout  time.Duration `env:"TIMEOUT" default:"30s"`
	Origins  []string      `env:"ORIGINS" default:"a,b" separator:","`
	Ignored  string
	Required string `env:"MUST_SET" required:"true"`
}

func TestParseEnvTagsDefaults(t *testing.T) {
	t.Setenv("APP_MUST_SET", "present")

	var cfg testConfig
	if err := environment.ParseEnvTags("APP", &cfg); err != nil {
		t.Fatalf("ParseEnvTags: %v", err)
	}

	if cfg.Name != "tasklane" {
		t.Errorf("Name = %q, want tasklane", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != "a" || cfg.Origins[1] != "b" {
		t.Errorf("Origins = %v, want [a b]", cfg.Origins)
	}
}

func TestParseEnvTagsOverrides(t *testing.T) {
	t.Setenv("APP_MUST_SET", "present")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_ORIGINS", "x, y")
	t.Setenv("APP_TIMEOUT", "1m")

	cfg := testConfig{}
	if err := environment.ParseEnvTags("APP", &cfg); err != nil {
		t.Fatalf("ParseEnvTags: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "y" {
		t.Errorf("Origins = %v, want [x y]", cfg.Origins)
	}
}

func TestParseEnvTagsRequired(t *testing.T) {
	var cfg testConfig
	err := environment.ParseEnvTags("UNSET_PREFIX", &cfg)
	if err == nil {
		t.Fatal("expected error for missing required variable")
	}
}

func TestParseEnvTagsRejectsNonPointer(t *testing.T) {
	if err := environment.ParseEnvTags("APP", testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer cfg")
	}
}
