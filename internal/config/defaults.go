package config

import "github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"

// DefaultExcludes are glob patterns the batch injector skips by default.
// The fragment itself must never be treated as a page.
var DefaultExcludes = []string{
	"static/**",
	"nav.html",
	"**/_*.html",
}

// DefaultConfig returns a Config with the monitor UI's reserved identifiers.
func DefaultConfig() *Config {
	return &Config{
		Fragment: FragmentConfig{
			File: "static/nav.html",
		},
		ContainerID:     dom.DefaultContainerID,
		MarkerAttr:      dom.DefaultMarkerAttr,
		ActiveClasses:   []string{"active"},
		InactiveClasses: []string{"inactive"},
		PagesDir:        "templates",
		Include:         []string{"**/*.html"},
		Exclude:         DefaultExcludes,
		Server: ServerConfig{
			Port:   8700,
			Inject: true,
		},
	}
}
