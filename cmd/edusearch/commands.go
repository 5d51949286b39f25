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
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/edusearch"
	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/session"
	"github.com/urfave/cli/v2"
)

// lookupAttempts is the most candidates one fallback resolution tries.
const lookupAttempts = 3

func newEngine(c *cli.Context) (*edusearch.Engine, error) {
	cfg := loadedConfig(c)
	return edusearch.NewEngine(
		edusearch.WithCatalogPath(cfg.Catalog.Path),
		edusearch.WithLookupConfig(cfg.LookupConfig()),
		edusearch.WithLogger(slog.Default()),
	)
}

func newSession(c *cli.Context, engine *edusearch.Engine) (*session.Session, error) {
	cfg := loadedConfig(c)
	return engine.NewSession(session.WithPoolSize(cfg.Session.PoolSize))
}

// await waits for the session's fallback to settle, bounded by the time
// the resolver can spend on all candidates.
func await(c *cli.Context, s *session.Session) (session.Snapshot, error) {
	timeout := lookupAttempts*loadedConfig(c).Lookup.Timeout + time.Second
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	defer cancel()
	return s.AwaitFallback(ctx)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	s, err := newSession(c, engine)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer s.Close()

	for _, facet := range core.Facets {
		value := c.String(string(facet))
		if value == core.All {
			continue
		}
		if err := s.SetFilter(facet, value); err != nil {
			return fmt.Errorf("invalid --%s: %w", facet, err)
		}
	}
	s.SetQuery(query)

	snap, err := await(c, s)
	if err != nil {
		return fmt.Errorf("fallback lookup did not finish: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, snap)
	}
	writeSnapshot(c.App.Writer, snap)
	return nil
}

func replCommand(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	s, err := newSession(c, engine)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer s.Close()

	out := c.App.Writer
	fmt.Fprintln(out, "Type a query, or :category X, :level X, :type X, :reset, :topics, :quit")

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, ":") {
			s.SetQuery(line)
		} else {
			name, arg, _ := strings.Cut(line[1:], " ")
			arg = strings.TrimSpace(arg)
			switch name {
			case "quit", "q":
				return nil
			case "reset":
				s.Reset()
			case "topics":
				writeTopics(out, catalog.Topics(), catalog.Suggestions())
				continue
			default:
				facet, err := core.ParseFacet(name)
				if err != nil {
					fmt.Fprintf(out, "unknown command %q\n", line)
					continue
				}
				if err := s.SetFilter(facet, arg); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
			}
		}

		snap, err := await(c, s)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		writeSnapshot(out, snap)
	}
}

func facetsCommand(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	for _, facet := range core.Facets {
		values := engine.Corpus().FacetOptions(facet)
		fmt.Fprintf(c.App.Writer, "%s: %s\n", facet, strings.Join(values, ", "))
	}
	return nil
}

func topicsCommand(c *cli.Context) error {
	writeTopics(c.App.Writer, catalog.Topics(), catalog.Suggestions())
	return nil
}

func seedCommand(c *cli.Context) error {
	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	n, err := edusearch.SeedCatalog(c.Context, dbPath, catalog.Default(), slog.Default())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Seeded %d resources into %s\n", n, dbPath)
	return nil
}

func configCommand(c *cli.Context) error {
	out, err := loadedConfig(c).YAML()
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return nil
}
