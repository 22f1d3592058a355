package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "devcase")
	cfg := testConfig{Port: 1}
	if err := Load(writeFile(t, "name: ${CONFIG_TEST_NAME}\n"), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "devcase" || cfg.Port != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	var cfg testConfig
	err := Load(writeFile(t, "name: x\nhost: y\n"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "host") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	var cfg testConfig
	err := Load(writeFile(t, "port: 8080\n"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg := testConfig{Name: "default"}
	if err := Load(writeFile(t, ""), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "default" {
		t.Errorf("name = %q", cfg.Name)
	}
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg := testConfig{Name: "default"}
	if err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err != nil {
		t.Fatal(err)
	}

	var empty testConfig
	if err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), &empty); err == nil {
		t.Error("missing file should still validate defaults")
	}
}
