package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file from the given path. The format is
// determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .renamerc will try both YAML and HCL formats
//
// Values not set in the file keep their defaults; flag handling in the CLI
// overrides file values afterwards.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	// For .renamerc files, try both YAML and HCL
	if ext == ".renamerc" || filepath.Base(path) == ".renamerc" {
		cfg, err = loadYAML(data)
		if err == nil {
			cfg.location = path
			return withDefaults(cfg), nil
		}

		cfg, err = loadHCL(data, path)
		if err == nil {
			cfg.location = path
			return withDefaults(cfg), nil
		}

		return nil, errors.Errorf("failed to parse .renamerc as YAML or HCL: %w", err)
	}

	switch ext {
	case ".json":
		cfg, err = loadJSON(data)
	case ".yaml", ".yml":
		cfg, err = loadYAML(data)
	case ".hcl":
		cfg, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}

	if err != nil {
		return nil, err
	}
	cfg.location = path

	return withDefaults(cfg), nil
}

// withDefaults fills zero-value fields with the stock defaults
func withDefaults(cfg *Config) *Config {
	def := Default()
	if cfg.Root == "" {
		cfg.Root = def.Root
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.Ignore.Dirs == nil {
		cfg.Ignore.Dirs = def.Ignore.Dirs
	}
	if cfg.Ignore.Files == nil {
		cfg.Ignore.Files = def.Ignore.Files
	}
	return cfg
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// HCL needs the ignore block split out as a pointer so it stays optional
	type hclConfig struct {
		Root        string `hcl:"root,optional"`
		Replacement string `hcl:"replacement,optional"`
		MaxFileSize int64  `hcl:"max_file_size,optional"`
		DryRun      bool   `hcl:"dry_run,optional"`
		Jobs        int    `hcl:"jobs,optional"`
		Ignore      *struct {
			Dirs  []string `hcl:"ignore_dirs,optional"`
			Files []string `hcl:"ignore_files,optional"`
		} `hcl:"ignore,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:        hclCfg.Root,
		Replacement: hclCfg.Replacement,
		MaxFileSize: hclCfg.MaxFileSize,
		DryRun:      hclCfg.DryRun,
		Jobs:        hclCfg.Jobs,
	}
	if hclCfg.Ignore != nil {
		cfg.Ignore = IgnoreSpec{
			Dirs:  hclCfg.Ignore.Dirs,
			Files: hclCfg.Ignore.Files,
		}
	}

	return cfg, nil
}
