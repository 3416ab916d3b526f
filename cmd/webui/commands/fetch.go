package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/webui/internal/ffi"
	"github.com/agiangrant/webui/internal/release"
)

// Fetch implements the 'webui fetch' command
func Fetch() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "download the prebuilt webui library for a target",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "version",
				Usage:       "webui release `tag`",
				DefaultText: "library.version from the config",
			},
			&cli.PathFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "extract into `dir`",
				DefaultText: "library.dir from the config",
			},
			&cli.StringFlag{
				Name:  "goos",
				Usage: "target operating system",
				Value: runtime.GOOS,
			},
			&cli.StringFlag{
				Name:  "goarch",
				Usage: "target architecture",
				Value: runtime.GOARCH,
			},
			&cli.BoolFlag{
				Name:  "header",
				Usage: "also download include/webui.h",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "download even if the library is already present",
			},
		},
		Action: fetch,
	}
}

func fetch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	version := cfg.Library.Version
	if c.IsSet("version") {
		version = c.String("version")
	}
	out := cfg.Library.Dir
	if c.IsSet("out") {
		out = c.Path("out")
	}
	target := ffi.Target{GOOS: c.String("goos"), GOARCH: c.String("goarch")}

	asset, err := target.Asset()
	if err != nil {
		return err
	}
	archiveURL, err := release.ArchiveURL(version, target)
	if err != nil {
		return err
	}

	log := logger(c).WithField("target", target.String()).WithField("version", version)

	libPath := filepath.Join(out, asset, target.LibraryName())
	if _, err := os.Stat(libPath); err == nil && !c.Bool("force") {
		log.WithField("path", libPath).Info("library already present")
		return nil
	}

	g, ctx := errgroup.WithContext(c.Context)

	g.Go(func() error {
		log.WithField("url", archiveURL).Info("downloading library")
		data, err := release.Download(ctx, nil, archiveURL)
		if err != nil {
			return err
		}
		paths, err := release.Extract(data, out)
		if err != nil {
			return err
		}
		log.WithField("files", len(paths)).Debug("archive extracted")
		return nil
	})

	if c.Bool("header") {
		g.Go(func() error {
			url, err := release.HeaderURL(version)
			if err != nil {
				return err
			}
			log.WithField("url", url).Info("downloading header")
			data, err := release.Download(ctx, nil, url)
			if err != nil {
				return err
			}
			dst := filepath.Join(out, "include", "webui.h")
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dst, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if _, err := os.Stat(libPath); err != nil {
		return fmt.Errorf("archive %s has no %s", asset, target.LibraryName())
	}

	fmt.Fprintf(c.App.Writer, "✓ Library ready: %s\n", libPath)
	return nil
}
