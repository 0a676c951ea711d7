package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (L7700_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: L7700_PAGES_DIR -> pages_dir, and
	// L7700_FRAGMENT__URL -> fragment.url for nested keys.
	if err := k.Load(env.Provider("L7700_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "L7700_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Fragment.URL == "" && c.Fragment.File == "" {
		return fmt.Errorf("fragment source is required: set fragment.url or fragment.file")
	}

	if c.ContainerID == "" {
		return fmt.Errorf("container_id is required")
	}
	if c.MarkerAttr == "" {
		return fmt.Errorf("marker_attr is required")
	}

	if len(c.ActiveClasses) == 0 {
		return fmt.Errorf("active_classes must name at least one class")
	}
	if len(c.InactiveClasses) == 0 {
		return fmt.Errorf("inactive_classes must name at least one class")
	}

	// The two sets are toggled as opposites; a shared class would be added
	// and removed by the same run.
	for _, a := range c.ActiveClasses {
		for _, i := range c.InactiveClasses {
			if a == i {
				return fmt.Errorf("class %q appears in both active_classes and inactive_classes", a)
			}
		}
	}

	if c.PagesDir == "" {
		return fmt.Errorf("pages_dir is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	return nil
}

// FragmentSource returns the configured fragment location and whether it is
// an HTTP URL. A relative file path resolves against the pages directory,
// where the fragment ships with the page tree, so every command sees the
// same file for the same config.
func (c *Config) FragmentSource() (source string, isURL bool) {
	if c.Fragment.URL != "" {
		return c.Fragment.URL, true
	}
	source = c.Fragment.File
	if source != "" && !filepath.IsAbs(source) {
		source = filepath.Join(c.PagesDir, source)
	}
	return source, false
}
