package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui"
)

// Clean implements the 'webui clean' command
func Clean() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "remove the fetched library and, optionally, browser profiles",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "profiles",
				Usage: "also delete every browser profile webui created",
			},
		},
		Action: clean,
	}
}

func clean(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Profiles go first; the library is needed to delete them.
	if c.Bool("profiles") {
		b, err := webui.Open(cfg, webui.WithLogger(logger(c)))
		if err != nil {
			return err
		}
		b.DeleteAllProfiles()
		b.Clean()
		b.Close()
		fmt.Fprintln(c.App.Writer, "✓ Profiles deleted")
	}

	dir := cfg.Library.Dir
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(c.App.Writer, "Nothing to clean")
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	fmt.Fprintf(c.App.Writer, "✓ Removed %s\n", dir)
	return nil
}
