package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults_Valid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if Defaults().Marine.MaxVelocity != 6.0 {
		t.Fatal("default max velocity must be 6.0")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[sim]
tick_rate = "8ms"
parallel = true
workers = 2

[weapon]
fire_interval = 0.5

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.TickRate != 8*time.Millisecond {
		t.Errorf("tick_rate = %v", cfg.Sim.TickRate)
	}
	if !cfg.Sim.Parallel || cfg.Sim.Workers != 2 {
		t.Errorf("parallel/workers = %v/%d", cfg.Sim.Parallel, cfg.Sim.Workers)
	}
	if cfg.Weapon.FireInterval != 0.5 {
		t.Errorf("fire_interval = %v", cfg.Weapon.FireInterval)
	}
	if cfg.Weapon.BulletSpeed != Defaults().Weapon.BulletSpeed {
		t.Errorf("unset key lost its default: %v", cfg.Weapon.BulletSpeed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero max velocity":    "[marine]\nmax_velocity = 0\n",
		"negative max speed":   "[marine]\nmax_velocity = -1\n",
		"above the 6.0 cap":    "[marine]\nmax_velocity = 9\n",
		"zero fire interval":   "[weapon]\nfire_interval = 0\n",
		"negative smoothing":   "[camera]\nsmoothing = -2\n",
		"zero bullet lifetime": "[weapon]\nbullet_lifetime = 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "[sim\n"))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("err = %v", err)
	}
}
