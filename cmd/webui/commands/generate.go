package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui/internal/bindgen"
	"github.com/agiangrant/webui/internal/release"
)

// Generate implements the 'webui generate' command, which regenerates the
// foreign declarations from the C header of a release.
func Generate() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "generate Go declarations from webui.h",
		UsageText: "webui generate --version 2.5.0-beta.2 --out internal/ffi/zz_generated.go",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "version",
				Usage: "webui release `tag`",
				Value: release.DefaultVersion,
			},
			&cli.PathFlag{
				Name:        "header",
				Usage:       "read a local webui.h from `path`",
				DefaultText: "downloaded",
			},
			&cli.PathFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write to `file`",
				Value:   "zz_generated.go",
			},
			&cli.StringFlag{
				Name:  "pkg",
				Usage: "package `name` of the generated file",
				Value: "ffi",
			},
		},
		Action: generate,
	}
}

func generate(c *cli.Context) error {
	version := c.String("version")
	if err := release.ValidateVersion(version); err != nil {
		return err
	}

	var src []byte
	if path := c.Path("header"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		src = data
	} else {
		url, err := release.HeaderURL(version)
		if err != nil {
			return err
		}
		logger(c).WithField("url", url).Info("downloading header")
		data, err := release.Download(c.Context, nil, url)
		if err != nil {
			return err
		}
		src = data
	}

	h, err := bindgen.Parse(src)
	if err != nil {
		return err
	}
	code, err := bindgen.Generate(h, c.String("pkg"), version)
	if err != nil {
		return err
	}
	out := c.Path("out")
	if err := os.WriteFile(out, code, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(c.App.Writer, "✓ Generated %s (%d functions, %d enums)\n", out, len(h.Functions), len(h.Enums))
	return nil
}
