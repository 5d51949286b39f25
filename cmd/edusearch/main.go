// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/poiesic/edusearch/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "edusearch",
		Usage:     "Search education and IoT resources, with an encyclopedia fallback",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a BadgerDB catalog directory (default: built-in resources)",
			},
			&cli.StringFlag{
				Name:  "lookup-url",
				Usage: "Summary endpoint used for the fallback",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout of a single summary request",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run one query and print the results",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only show resources of this category",
						Value: "All",
					},
					&cli.StringFlag{
						Name:  "level",
						Usage: "Only show resources of this level",
						Value: "All",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Only show resources of this type",
						Value: "All",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the result snapshot as JSON",
					},
				},
			},
			{
				Name:   "repl",
				Usage:  "Interactive search session",
				Action: replCommand,
			},
			{
				Name:   "facets",
				Usage:  "List the facet values found in the catalog",
				Action: facetsCommand,
			},
			{
				Name:   "topics",
				Usage:  "List the quick-search topics",
				Action: topicsCommand,
			},
			{
				Name:   "seed",
				Usage:  "Write the built-in resources into a BadgerDB catalog",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as YAML",
				Action: configCommand,
			},
		},
	}
}

// setupLogger loads the configuration, applies the global flags on top of
// it and installs the default logger.
func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("catalog") {
		cfg.Catalog.Path = c.String("catalog")
	}
	if c.IsSet("lookup-url") {
		cfg.Lookup.BaseURL = c.String("lookup-url")
	}
	if c.IsSet("timeout") {
		cfg.Lookup.Timeout = c.Duration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.Log.Level)
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}
