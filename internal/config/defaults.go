package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = "disk"
	}
	if cfg.State.Path == "" {
		if cfg.State.Backend == "sqlite" {
			cfg.State.Path = ".driftlens/state.db"
		} else {
			cfg.State.Path = ".driftlens/state.json"
		}
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 4
	}
	if cfg.Scan.CacheTTLSeconds == 0 {
		cfg.Scan.CacheTTLSeconds = 300
	}
	if cfg.Scan.Exclude == nil {
		cfg.Scan.Exclude = []string{"node_modules", "vendor", "dist", "build", "__pycache__", "target"}
	}
	cfg.Analyzer.ApplyDefaults()
}
