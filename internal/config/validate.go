package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency. All checks run and
// every failure is reported.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Source.Dir == "" {
		if cfg.Source.BaseURL == "" {
			errs = append(errs, "one of source.base_url or source.dir must be set")
		} else if u, err := url.Parse(cfg.Source.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("source.base_url %q must be an http or https URL", cfg.Source.BaseURL))
		}
	}
	if strings.Contains(cfg.Source.IndexPath, "..") {
		errs = append(errs, fmt.Sprintf("source.index_path %q must not contain \"..\"", cfg.Source.IndexPath))
	}
	if strings.Contains(cfg.Source.AssetBase, "..") {
		errs = append(errs, fmt.Sprintf("source.asset_base %q must not contain \"..\"", cfg.Source.AssetBase))
	}

	switch cfg.Clipboard.Backend {
	case "auto", "native", "command":
	default:
		errs = append(errs, fmt.Sprintf("clipboard.backend %q must be \"auto\", \"native\", or \"command\"", cfg.Clipboard.Backend))
	}

	switch cfg.UI.Theme {
	case "default", "light", "mono":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"default\", \"light\", or \"mono\"", cfg.UI.Theme))
	}

	if cfg.UI.ToastDurationMS <= 0 {
		errs = append(errs, "ui.toast_duration_ms must be positive")
	}
	if cfg.UI.ThumbnailCache <= 0 {
		errs = append(errs, "ui.thumbnail_cache must be positive")
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr must be set")
	}
	if cfg.Update.Repo != "" && strings.Count(cfg.Update.Repo, "/") != 1 {
		errs = append(errs, fmt.Sprintf("update.repo %q must be owner/name", cfg.Update.Repo))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
