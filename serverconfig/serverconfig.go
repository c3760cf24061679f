// Package serverconfig loads btxd's server configuration: where the page
// data tree lives and how connections are accepted. It follows the same
// XDG-basedir search and YAML-first decoding the teacher project's config
// loader uses, generalized to this server's settings.
package serverconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is btxd's server configuration document.
type Config struct {
	// DataRoot is the filesystem root of the page tree (".meta"/".cept"
	// artifacts, "a.glob" overlays, ".pal"/".inc" assets).
	DataRoot string `yaml:"data_root"`
	// Listen is the address btxd accepts TCP connections on, e.g.
	// ":7800". Ignored when running with --modem.
	Listen string `yaml:"listen,omitempty"`
	// Compress enables CEPT run compression on outgoing page data by
	// default for every connection.
	Compress bool `yaml:"compress,omitempty"`
}

var configFilenames = []string{"btxd.yaml", "btxd.yml", "btxd.json"}

// ConfigLocator locates a config file in a given directory.
type ConfigLocator interface {
	Locate(dir string) (string, error)
}

// ConfigLocatorFunc adapts a function to a ConfigLocator.
type ConfigLocatorFunc func(dir string) (string, error)

// Locate implements ConfigLocator.
func (f ConfigLocatorFunc) Locate(dir string) (string, error) { return f(dir) }

var defaultLocator = ConfigLocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("serverconfig: no config file in %s", dir)
})

// LocateRcfile searches, in order: $XDG_CONFIG_HOME/btxd, each directory
// in $XDG_CONFIG_DIRS joined with "btxd", then ~/.btxd.
func LocateRcfile(locator ConfigLocator) (string, error) {
	home, homeErr := os.UserHomeDir()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locator.Locate(filepath.Join(dir, "btxd")); err == nil {
			return file, nil
		}
	} else if homeErr == nil {
		if file, err := locator.Locate(filepath.Join(home, ".config", "btxd")); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, string(filepath.ListSeparator)) {
			if file, err := locator.Locate(filepath.Join(dir, "btxd")); err == nil {
				return file, nil
			}
		}
	}

	if homeErr == nil {
		if file, err := locator.Locate(filepath.Join(home, ".btxd")); err == nil {
			return file, nil
		}
	}

	return "", errors.New("serverconfig: config file not found")
}

// Load reads and decodes filename into a Config, rejecting unknown
// top-level keys.
func Load(filename string) (Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.UnmarshalWithOptions(raw, &cfg, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("serverconfig: decoding %s: %w", filename, err)
	}
	if cfg.DataRoot == "" {
		return Config{}, fmt.Errorf("serverconfig: %s: data_root is required", filename)
	}
	return cfg, nil
}

// DefaultLocator is the locator LocateRcfile uses when no custom
// ConfigLocator is needed.
func DefaultLocator() ConfigLocator { return defaultLocator }
