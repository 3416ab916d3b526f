package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui"
)

// Init implements the 'webui init' command
func Init() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "write a default " + webui.ConfigFile,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "browser",
				Usage: "preferred `browser` for new windows",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "webui release `tag`",
				Value: webui.Version,
			},
			&cli.StringFlag{
				Name:  "lib",
				Usage: "directory the library is fetched into",
				Value: "lib",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing file",
			},
		},
		Action: initProject,
	}
}

func initProject(c *cli.Context) error {
	path := webui.ConfigFile
	if c.IsSet("config") {
		path = c.Path("config")
	}
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := webui.DefaultConfig()
	cfg.Library.Version = c.String("version")
	cfg.Library.Dir = c.String("lib")
	cfg.Window.Browser = c.String("browser")
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "✓ Created %s\n", path)
	fmt.Fprintln(c.App.Writer, "Run 'webui fetch' to download the library")
	return nil
}
