package config

type Config struct {
	Source    SourceConfig    `yaml:"source" toml:"source"`
	Clipboard ClipboardConfig `yaml:"clipboard" toml:"clipboard"`
	UI        UIConfig        `yaml:"ui" toml:"ui"`
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Update    UpdateConfig    `yaml:"update" toml:"update"`
}

// SourceConfig selects where the catalog comes from. A non-empty Dir wins
// over BaseURL.
type SourceConfig struct {
	BaseURL   string `yaml:"base_url" toml:"base_url"`
	Dir       string `yaml:"dir" toml:"dir"`
	IndexPath string `yaml:"index_path" toml:"index_path"`
	AssetBase string `yaml:"asset_base" toml:"asset_base"`
}

type ClipboardConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
}

type UIConfig struct {
	Theme           string `yaml:"theme" toml:"theme"`
	ToastDurationMS int    `yaml:"toast_duration_ms" toml:"toast_duration_ms"`
	Thumbnails      *bool  `yaml:"thumbnails" toml:"thumbnails"`
	ThumbnailCache  int    `yaml:"thumbnail_cache" toml:"thumbnail_cache"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
	Dir  string `yaml:"dir" toml:"dir"`
}

type UpdateConfig struct {
	Repo string `yaml:"repo" toml:"repo"`
}
