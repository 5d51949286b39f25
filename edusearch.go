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


package edusearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/fallback"
	"github.com/poiesic/edusearch/lookup"
	"github.com/poiesic/edusearch/lookup/wiki"
	"github.com/poiesic/edusearch/session"
	"github.com/poiesic/edusearch/storage/badger"
)

// Engine wires a corpus, a summary service and a fallback resolver, and
// hands out search sessions over them.
type Engine struct {
	corpus      *catalog.Corpus
	service     lookup.SummaryService
	ownsService bool
	resolver    *fallback.Resolver
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	catalogPath  string
	corpus       *catalog.Corpus
	lookupConfig *lookup.Config
	service      lookup.SummaryService
	logger       *slog.Logger
}

// WithCatalogPath loads the corpus once from the badger catalog at path
// instead of using the compiled-in records.
func WithCatalogPath(path string) EngineOption {
	return func(o *engineOptions) {
		o.catalogPath = path
	}
}

// WithCorpus uses corpus as is. It takes precedence over WithCatalogPath.
func WithCorpus(corpus *catalog.Corpus) EngineOption {
	return func(o *engineOptions) {
		o.corpus = corpus
	}
}

// WithLookupConfig configures the Wikipedia client the engine creates.
// Ignored when WithSummaryService is given.
func WithLookupConfig(cfg *lookup.Config) EngineOption {
	return func(o *engineOptions) {
		o.lookupConfig = cfg
	}
}

// WithSummaryService injects the summary service. The engine does not
// close an injected service.
func WithSummaryService(service lookup.SummaryService) EngineOption {
	return func(o *engineOptions) {
		o.service = service
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine creates an engine. By default it serves the compiled-in corpus
// and looks up fallbacks on English Wikipedia.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		lookupConfig: lookup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	corpus := options.corpus
	if corpus == nil {
		var err error
		corpus, err = loadCorpus(options.catalogPath, logger)
		if err != nil {
			return nil, err
		}
	}

	service := options.service
	ownsService := false
	if service == nil {
		var err error
		service, err = wiki.NewClient(options.lookupConfig, wiki.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		ownsService = true
	}

	resolver, err := fallback.NewResolver(service, fallback.WithLogger(logger))
	if err != nil {
		if ownsService {
			_ = closeService(service, logger.With("component", "engine"))
		}
		return nil, err
	}

	logger.Debug("engine ready", "component", "engine", "resources", corpus.Len(), "catalog", options.catalogPath)
	return &Engine{
		corpus:      corpus,
		service:     service,
		ownsService: ownsService,
		resolver:    resolver,
		logger:      logger.With("component", "engine"),
	}, nil
}

// loadCorpus returns the compiled-in corpus when path is empty, otherwise
// reads the catalog stored at path.
func loadCorpus(path string, logger *slog.Logger) (*catalog.Corpus, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	backend, err := badger.OpenBackend(path, false, badger.WithBackendLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer backend.Close()

	repo, err := badger.NewResourceRepository(backend)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return catalog.Load(context.Background(), repo)
}

// SeedCatalog writes corpus into the badger catalog at path, creating it if
// needed. It returns the number of resources written.
func SeedCatalog(ctx context.Context, path string, corpus *catalog.Corpus, logger *slog.Logger) (int, error) {
	if path == "" {
		return 0, errors.New("catalog path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := badger.OpenBackend(path, false, badger.WithBackendLogger(logger))
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer backend.Close()

	repo, err := badger.NewResourceRepository(backend)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if err := catalog.Seed(ctx, repo, corpus); err != nil {
		return 0, err
	}
	return corpus.Len(), nil
}

// Corpus returns the engine's corpus.
func (e *Engine) Corpus() *catalog.Corpus {
	return e.corpus
}

// NewSession creates a search session over the engine's corpus and
// resolver. The caller must Close it.
func (e *Engine) NewSession(opts ...session.Option) (*session.Session, error) {
	opts = append([]session.Option{session.WithLogger(e.logger)}, opts...)
	return session.New(e.corpus, e.resolver, opts...)
}

// Close releases the summary service if the engine created it.
func (e *Engine) Close() error {
	if !e.ownsService {
		return nil
	}
	return closeService(e.service, e.logger)
}

// closeService closes service and logs a failure.
func closeService(service lookup.SummaryService, logger *slog.Logger) error {
	if err := service.Close(); err != nil {
		logger.Error("error closing summary service", "err", err)
		return err
	}
	return nil
}
