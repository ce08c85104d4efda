package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using dir for file discovery.
func LoadFrom(dir string) (*Config, error) {
	return load(dir, env.ToMap(os.Environ()))
}

func load(dir string, environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()

	path := discoverConfigPath(dir)
	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg, environ)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file that exists, or "" for
// defaults-only mode.
func discoverConfigPath(dir string) string {
	candidates := []string{
		filepath.Join(dir, "stickerbox.yaml"),
		filepath.Join(dir, "stickerbox.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "stickerbox", "config.yaml"),
			filepath.Join(home, ".config", "stickerbox", "config.toml"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return &cfg, nil
}

// merge overlays override onto base. Strings and ints override when non-zero,
// *bool when non-nil.
func merge(base *Config, override *Config) {
	setString(&base.Source.BaseURL, override.Source.BaseURL)
	setString(&base.Source.Dir, override.Source.Dir)
	setString(&base.Source.IndexPath, override.Source.IndexPath)
	setString(&base.Source.AssetBase, override.Source.AssetBase)

	setString(&base.Clipboard.Backend, override.Clipboard.Backend)

	setString(&base.UI.Theme, override.UI.Theme)
	if override.UI.ToastDurationMS != 0 {
		base.UI.ToastDurationMS = override.UI.ToastDurationMS
	}
	if override.UI.Thumbnails != nil {
		base.UI.Thumbnails = override.UI.Thumbnails
	}
	if override.UI.ThumbnailCache != 0 {
		base.UI.ThumbnailCache = override.UI.ThumbnailCache
	}

	setString(&base.Server.Addr, override.Server.Addr)
	setString(&base.Server.Dir, override.Server.Dir)

	setString(&base.Update.Repo, override.Update.Repo)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

const envPrefix = "STICKERBOX_"

// envOverrides mirrors the STICKERBOX_* variables. Unset variables leave
// their field nil.
type envOverrides struct {
	BaseURL    *string `env:"BASE_URL"`
	Dir        *string `env:"DIR"`
	IndexPath  *string `env:"INDEX_PATH"`
	AssetBase  *string `env:"ASSET_BASE"`
	Clipboard  *string `env:"CLIPBOARD"`
	Theme      *string `env:"THEME"`
	ToastMS    *int    `env:"TOAST_MS"`
	Thumbnails *bool   `env:"THUMBNAILS"`
	Addr       *string `env:"ADDR"`
}

// applyEnvOverrides applies STICKERBOX_* variables on top of the config.
// Values that fail to parse are reported and ignored; the others still apply.
func applyEnvOverrides(cfg *Config, environ map[string]string) {
	o := parseEnvOverrides(environ)

	overrideString(&cfg.Source.BaseURL, o.BaseURL)
	overrideString(&cfg.Source.Dir, o.Dir)
	overrideString(&cfg.Source.IndexPath, o.IndexPath)
	overrideString(&cfg.Source.AssetBase, o.AssetBase)
	overrideString(&cfg.Clipboard.Backend, o.Clipboard)
	overrideString(&cfg.UI.Theme, o.Theme)
	overrideString(&cfg.Server.Addr, o.Addr)
	if o.ToastMS != nil {
		cfg.UI.ToastDurationMS = *o.ToastMS
	}
	if o.Thumbnails != nil {
		cfg.UI.Thumbnails = o.Thumbnails
	}
}

// parseEnvOverrides parses all variables at once. On failure the partially
// filled result cannot be trusted (a bad number leaves a zero behind), so
// each variable is parsed on its own and only the clean ones are kept.
func parseEnvOverrides(environ map[string]string) envOverrides {
	var o envOverrides
	err := env.ParseWithOptions(&o, env.Options{Prefix: envPrefix, Environment: environ})
	if err == nil {
		return o
	}

	var kept envOverrides
	for k, v := range environ {
		if !strings.HasPrefix(k, envPrefix) {
			continue
		}
		var one envOverrides
		if err := env.ParseWithOptions(&one, env.Options{
			Prefix:      envPrefix,
			Environment: map[string]string{k: v},
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: ignoring %s: %v\n", k, err)
			continue
		}
		kept.fill(one)
	}
	return kept
}

// fill copies every field set in src.
func (o *envOverrides) fill(src envOverrides) {
	for _, f := range []struct{ dst, src **string }{
		{&o.BaseURL, &src.BaseURL},
		{&o.Dir, &src.Dir},
		{&o.IndexPath, &src.IndexPath},
		{&o.AssetBase, &src.AssetBase},
		{&o.Clipboard, &src.Clipboard},
		{&o.Theme, &src.Theme},
		{&o.Addr, &src.Addr},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if src.ToastMS != nil {
		o.ToastMS = src.ToastMS
	}
	if src.Thumbnails != nil {
		o.Thumbnails = src.Thumbnails
	}
}

func overrideString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
