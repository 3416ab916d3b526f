// Package commands implements the subcommands of the webui tool.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/agiangrant/webui"
)

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "set logging `level` to trace, debug, info, warn or error",
		Value:   "info",
		EnvVars: []string{"WEBUI_LOGLVL"},
	},
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "`format` logs as text or json",
		Value:   "text",
		EnvVars: []string{"WEBUI_LOGFMT"},
	},
	&cli.PathFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "read settings from `path`",
		DefaultText: webui.ConfigFile + " in the project root",
		EnvVars:     []string{webui.ConfigEnv},
	},
}

// App returns the webui command line application.
func App() *cli.App {
	return &cli.App{
		Name:      "webui",
		Usage:     "fetch and configure the webui native library",
		UsageText: "webui [global options] command [command options] [arguments...]",
		Version:   webui.Version,
		Flags:     flags,
		Before:    setup,
		Commands: []*cli.Command{
			Fetch(),
			Generate(),
			Init(),
			Clean(),
			Version(),
		},
	}
}

const loggerKey = "logger"

func setup(c *cli.Context) error {
	log := logrus.New()
	log.SetOutput(c.App.ErrWriter)

	level, err := logrus.ParseLevel(c.String("loglvl"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch c.String("logfmt") {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", c.String("logfmt"))
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerKey] = log
	return nil
}

func logger(c *cli.Context) logrus.FieldLogger {
	if log, ok := c.App.Metadata[loggerKey].(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}
