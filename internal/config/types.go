package config

// FragmentConfig says where the shared navigation fragment lives. Exactly
// one source is used per run: URL wins when both are set.
type FragmentConfig struct {
	// URL is an HTTP(S) location returning the fragment markup.
	URL string `yaml:"url" koanf:"url"`
	// File is a path to the fragment markup on disk, for page trees that
	// ship the fragment alongside the pages.
	File string `yaml:"file" koanf:"file"`
}

// ServerConfig holds dev-server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"` // allow all CORS origins (dev mode)
	// Inject pipes HTML responses through the load-inject-mark pipeline so
	// pages are served with navigation already present and marked.
	Inject bool `yaml:"inject" koanf:"inject"`
}

// Config is the top-level tool configuration, corresponding to .l7700nav.yml.
// The zero-value file (all defaults) reproduces the monitor UI's reserved
// identifiers, so a config file is optional.
type Config struct {
	Fragment        FragmentConfig `yaml:"fragment" koanf:"fragment"`
	ContainerID     string         `yaml:"container_id" koanf:"container_id"`
	MarkerAttr      string         `yaml:"marker_attr" koanf:"marker_attr"`
	ActiveClasses   []string       `yaml:"active_classes" koanf:"active_classes"`
	InactiveClasses []string       `yaml:"inactive_classes" koanf:"inactive_classes"`
	PagesDir        string         `yaml:"pages_dir" koanf:"pages_dir"`
	OutputDir       string         `yaml:"output_dir" koanf:"output_dir"`
	Include         []string       `yaml:"include" koanf:"include"`
	Exclude         []string       `yaml:"exclude" koanf:"exclude"`
	Server          ServerConfig   `yaml:"server" koanf:"server"`
}
