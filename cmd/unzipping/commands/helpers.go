package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/config"
	"github.com/xl-idp/unzipping/internal/identity"
	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/orchestrator"
	"github.com/xl-idp/unzipping/internal/registry"
	"github.com/xl-idp/unzipping/internal/search"
	"github.com/xl-idp/unzipping/internal/watch"
)

// service is the fully wired application.
type service struct {
	cfg      *config.Config
	log      *observability.Logger
	cat      *catalog.Catalog
	store    identity.Store
	pipeline *orchestrator.Pipeline
}

func (s *service) close() {
	if s.store != nil {
		s.store.Close()
	}
}

// buildService assembles every layer from the configuration.
func buildService() (*service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	var output io.Writer = os.Stderr
	format := ""
	if cfg.Logging.Console {
		format = "console"
	}
	if fw, err := observability.FileWriter(cfg.Root, "unzipping"); err == nil {
		output = io.MultiWriter(os.Stderr, fw)
	}
	log := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      format,
		Output:      output,
		ServiceName: "unzipping",
	})

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load synonym catalog: %w", err)
		}
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}

	enricher := buildEnricher(cfg, cat, store, log)
	pipeline := orchestrator.NewPipeline(cat, enricher, orchestrator.Config{
		Dirs: orchestrator.Dirs{
			JSON:   cfg.JSONDir(),
			Done:   cfg.DoneExcelDir(),
			Errors: cfg.ErrorsExcelDir(),
		},
		SeedPositions:     cfg.Pipeline.SeedPositions,
		HeaderCoefficient: cfg.Pipeline.HeaderCoefficient,
		HeaderMinCells:    cfg.Pipeline.HeaderMinCells,
	}, log)

	return &service{cfg: cfg, log: log, cat: cat, store: store, pipeline: pipeline}, nil
}

func openStore(cfg *config.Config, log *observability.Logger) (identity.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		return identity.NewSQLStore(identity.DriverSQLite, cfg.SQLiteDSN(), log)
	case config.BackendPostgres:
		return identity.NewSQLStore(identity.DriverPostgres, cfg.Cache.DSN, log)
	case config.BackendRedis:
		r := cfg.Cache.Redis
		return identity.NewRedisStore(r.Addr, r.Password, r.DB, r.TTL, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func buildEnricher(cfg *config.Config, cat *catalog.Catalog, store identity.Store, log *observability.Logger) *identity.Enricher {
	pool := registry.NewProxyPool(cfg.Registry.Proxies, log)
	httpClient := registry.NewHTTPClient(pool, cfg.Registry.Timeout)
	// Only the Russia registry gets the delayed retry; the others record the
	// outage and return nulls so the workbook keeps moving.
	russiaDoer := registry.NewRetryDoer(httpClient, cfg.Registry.RetryDelay, nil, log)

	resolvers := []registry.Resolver{
		registry.NewRussiaResolver(cfg.Registry.RussiaURLFormat, russiaDoer, log),
		registry.NewKazakhstanResolver(cfg.Registry.KazakhstanBaseURL, httpClient, log),
		registry.NewBelarusResolver(cfg.Registry.BelarusURLFormat, httpClient, log),
		registry.NewUzbekistanResolver(cfg.Registry.UzbekistanBaseURL, httpClient, nil, log),
	}

	var searcher identity.Searcher
	if cfg.Search.Enabled && cfg.Search.Key != "" {
		searcher = search.NewClient(search.Config{
			BaseURL:  cfg.Search.BaseURL,
			User:     cfg.Search.User,
			Key:      cfg.Search.Key,
			Attempts: cfg.Search.Attempts,
			RetryGap: cfg.Search.RetryGap,
		}, httpClient, identity.NewSearchCache(store), nil, log)
	}

	return identity.NewEnricher(cat, store, resolvers, searcher, log)
}

// buildWatcher wires the inbox watcher onto the pipeline.
func buildWatcher(s *service) (*watch.Watcher, error) {
	w, err := watch.New(watch.Config{
		InDir:         s.cfg.InputDir,
		DoneDir:       s.cfg.DoneDir(),
		ErrorsDir:     s.cfg.ErrorsDir(),
		ScratchDir:    s.cfg.ScratchDir(),
		StabilityWait: s.cfg.Watch.StabilityWait,
		PollInterval:  s.cfg.Watch.PollInterval,
	}, s.log)
	if err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, path, origin string) error {
		_, err := s.pipeline.ProcessFile(ctx, path, origin)
		return err
	}
	w.Handle(".xlsx", handler)
	w.Handle(".xls", handler)
	w.HandleArchive(".zip", watch.ZipUnpacker{})
	return w, nil
}
