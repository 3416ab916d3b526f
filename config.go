package webui

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/agiangrant/webui/internal/release"
)

// ConfigFile is the conventional name of the configuration file.
const ConfigFile = "webui.toml"

// Config is the content of webui.toml.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Registry RegistryConfig `toml:"registry"`
	Runtime  RuntimeConfig  `toml:"runtime"`
	Window   WindowConfig   `toml:"window"`
}

// LibraryConfig locates the shared library.
type LibraryConfig struct {
	// Path of the library file. Empty searches Dir and the default
	// locations, see ffi.LibraryPath.
	Path    string `toml:"path,omitempty"`
	Version string `toml:"version"`
	// Dir is where `webui fetch` extracts releases.
	Dir string `toml:"dir"`
}

// RegistryConfig bounds the callback registry.
type RegistryConfig struct {
	MaxWindows  int `toml:"max_windows"`
	MaxElements int `toml:"max_elements"`
}

// RuntimeConfig holds process-wide settings applied when the bridge opens.
type RuntimeConfig struct {
	// Timeout in seconds Show waits for a browser; 0 keeps webui's default.
	Timeout int `toml:"timeout"`
	// Options maps webui_config names such as "multi_client" to their state.
	Options map[string]bool `toml:"options,omitempty"`
}

// WindowConfig holds defaults applied to every new window. Zero values are
// left to webui.
type WindowConfig struct {
	Browser       string `toml:"browser,omitempty"`
	Kiosk         bool   `toml:"kiosk,omitempty"`
	HighContrast  bool   `toml:"high_contrast,omitempty"`
	Hidden        bool   `toml:"hidden,omitempty"`
	Width         uint32 `toml:"width,omitempty"`
	Height        uint32 `toml:"height,omitempty"`
	X             uint32 `toml:"x,omitempty"`
	Y             uint32 `toml:"y,omitempty"`
	Proxy         string `toml:"proxy,omitempty"`
	ProfileName   string `toml:"profile_name,omitempty"`
	ProfilePath   string `toml:"profile_path,omitempty"`
	RootFolder    string `toml:"root_folder,omitempty"`
	Port          uint   `toml:"port,omitempty"`
	Public        bool   `toml:"public,omitempty"`
	EventBlocking bool   `toml:"event_blocking,omitempty"`
	Runtime       string `toml:"runtime,omitempty"`
}

// DefaultConfig returns the configuration used without a webui.toml.
func DefaultConfig() Config {
	return Config{
		Library: LibraryConfig{
			Version: release.DefaultVersion,
			Dir:     "lib",
		},
		Registry: RegistryConfig{
			MaxWindows:  DefaultMaxWindows,
			MaxElements: DefaultMaxElements,
		},
	}
}

// LoadConfig reads path on top of DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if c.Library.Version != "" {
		err = multierr.Append(err, release.ValidateVersion(c.Library.Version))
	}
	if c.Registry.MaxWindows < 0 {
		err = multierr.Append(err, fmt.Errorf("registry.max_windows must not be negative"))
	}
	if c.Registry.MaxElements < 0 {
		err = multierr.Append(err, fmt.Errorf("registry.max_elements must not be negative"))
	}
	if c.Runtime.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("runtime.timeout must not be negative"))
	}
	for name := range c.Runtime.Options {
		_, perr := ParseOption(name)
		err = multierr.Append(err, perr)
	}
	if _, perr := ParseBrowser(c.Window.Browser); perr != nil {
		err = multierr.Append(err, perr)
	}
	if _, perr := ParseRuntime(c.Window.Runtime); perr != nil {
		err = multierr.Append(err, perr)
	}
	return err
}
