package main

import (
	"context"
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/analysis"
	"github.com/drishanroy/resume-analysis-app/internal/config"
	"github.com/drishanroy/resume-analysis-app/internal/db"
	"github.com/drishanroy/resume-analysis-app/internal/fetch"
	"github.com/drishanroy/resume-analysis-app/internal/ingestion"
	"github.com/drishanroy/resume-analysis-app/internal/logging"
	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// application holds the services shared by every command.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *db.DB
	ontology  *ontology.Ontology
	service   *analysis.Service
	documents *storage.Store
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, logger, nil
}

// newApplication loads configuration and builds the analysis stack.
func newApplication(ctx context.Context) (*application, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &application{cfg: cfg, logger: logger}

	if cfg.Database.URL != "" {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		a.db = database
		if cfg.Database.EnsureSchema {
			if err := database.EnsureSchema(ctx); err != nil {
				a.Close()
				return nil, err
			}
		}
	}

	source, err := a.ontologySource()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.ontology, err = source.LoadOntology(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Debug("ontology loaded",
		zap.String("source", cfg.Ontology.Source),
		zap.Int("buckets", len(a.ontology.Buckets())),
		zap.Int("synonyms", a.ontology.SynonymCount()),
	)

	engine, err := analysis.NewEngine(a.ontology, analysis.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.service = analysis.NewService(engine, ingestion.NewDecoder(cfg.Analysis.DecodeTimeout, cfg.Analysis.MaxTextChars), a.jobFetcher(), logger)

	var objects storage.ObjectGetter
	if cfg.S3.Region != "" || cfg.S3.Endpoint != "" {
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			a.Close()
			return nil, err
		}
		objects = client
	}
	a.documents = storage.NewStore(objects, cfg.Server.MaxUploadBytes)

	return a, nil
}

func (a *application) ontologySource() (ontology.Source, error) {
	switch a.cfg.Ontology.Source {
	case config.OntologyFile:
		return ontology.FileSource{Path: a.cfg.Ontology.Path}, nil
	case config.OntologyPostgres:
		if a.db == nil {
			return nil, fmt.Errorf("ontology source %q requires database.url", config.OntologyPostgres)
		}
		return a.db, nil
	default:
		return ontology.EmbeddedSource{}, nil
	}
}

// jobFetcher returns nil when fetching is disabled, so requests carrying only
// a job URL are rejected.
func (a *application) jobFetcher() analysis.JobFetcher {
	fc := a.cfg.Fetch
	if !fc.Enabled {
		return nil
	}

	var renderer fetch.Renderer
	if fc.UseBrowser {
		renderer = fetch.NewBrowserRenderer(fc.BrowserTimeout, a.logger)
	}
	opts := fetch.DefaultOptions()
	opts.Timeout = fc.Timeout
	opts.UserAgent = fc.UserAgent
	fetcher := fetch.NewJobFetcher(opts, renderer, a.logger)

	if a.db != nil && fc.CacheTTL > 0 {
		return fetch.NewCachedFetcher(fetcher, a.db, fc.CacheTTL, a.logger)
	}
	return fetcher
}

// Close releases the database pool and flushes the logger.
func (a *application) Close() {
	if a.db != nil {
		a.db.Close()
	}
	_ = a.logger.Sync()
}
