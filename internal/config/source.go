package config

import (
	"time"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
)

// NewSource builds the catalog source the config points at.
func (c *Config) NewSource() (catalog.Source, error) {
	if c.Source.Dir != "" {
		return catalog.NewDirSource(c.Source.Dir), nil
	}
	src, err := catalog.NewHTTPSource(c.Source.BaseURL, c.Source.IndexPath, c.Source.AssetBase)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastDurationMS) * time.Millisecond
}

func (c *Config) ThumbnailsEnabled() bool {
	return c.UI.Thumbnails == nil || *c.UI.Thumbnails
}
