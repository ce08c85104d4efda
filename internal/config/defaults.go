package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:   "http://localhost:8080",
			IndexPath: "stickers/index.json",
			AssetBase: "stickers",
		},
		Clipboard: ClipboardConfig{
			Backend: "auto",
		},
		UI: UIConfig{
			Theme:           "default",
			ToastDurationMS: 2000,
			Thumbnails:      boolPtr(true),
			ThumbnailCache:  256,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Dir:  "stickers",
		},
		Update: UpdateConfig{
			Repo: "justinpbarnett/stickerbox",
		},
	}
}
