package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui"
	"github.com/agiangrant/webui/internal/ffi"
)

// Version implements the 'webui version' command
func Version() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the binding version and library location",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			target := ffi.CurrentTarget()
			asset, err := target.Asset()
			if err != nil {
				asset = "unsupported"
			}

			w := c.App.Writer
			fmt.Fprintf(w, "binding:  %s\n", webui.Version)
			fmt.Fprintf(w, "library:  %s\n", cfg.Library.Version)
			fmt.Fprintf(w, "target:   %s (%s)\n", target, asset)
			fmt.Fprintf(w, "path:     %s\n", webui.LibraryPath(cfg.Library))
			return nil
		},
	}
}
