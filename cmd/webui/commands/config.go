package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui"
)

// FindProjectRoot finds the project root by looking for webui.toml or go.mod
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, webui.ConfigFile)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a webui project (no %s or go.mod found)", webui.ConfigFile)
		}
		dir = parent
	}
}

// configPath returns the config file named by --config, or webui.toml in
// the project root. The working directory stands in for a missing root.
func configPath(c *cli.Context) string {
	if path := c.Path("config"); path != "" {
		return path
	}
	root, err := FindProjectRoot()
	if err != nil {
		root = "."
	}
	return filepath.Join(root, webui.ConfigFile)
}

// loadConfig reads the project config. A missing default file yields the
// default config; a missing --config file is an error.
func loadConfig(c *cli.Context) (webui.Config, error) {
	path := configPath(c)
	cfg, err := webui.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) && !c.IsSet("config") {
		logger(c).WithField("path", path).Debug("no config file, using defaults")
		return webui.DefaultConfig(), nil
	}
	return cfg, err
}
