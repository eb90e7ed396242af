package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestYAMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"config.yaml": {Data: []byte(`
logging:
  format: json
generate:
  strategy: modulo
lua:
  max_n: 42
`)},
	}

	config, err := NewYAMLLoaderWithFS(fsys, "config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "logging.format"); !ok || val != "json" {
		t.Errorf("logging.format = %v, want json", val)
	}
	if val, ok := GetByPath(config, "generate.strategy"); !ok || val != "modulo" {
		t.Errorf("generate.strategy = %v, want modulo", val)
	}
	if val, ok := GetByPath(config, "lua.max_n"); !ok || val != 42 {
		t.Errorf("lua.max_n = %v (%T), want 42", val, val)
	}
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(fstest.MapFS{}, "missing.yaml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	_, err := (&YAMLLoader{}).LoadFromReader(strings.NewReader("logging: [unclosed"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Path != "<reader>" {
		t.Errorf("Path = %q", parseErr.Path)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := (&YAMLLoader{}).LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if len(config) != 0 {
		t.Errorf("config = %v, want empty", config)
	}
}
