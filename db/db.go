package db

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"eventgraph/models"
)

// Source yields the dataset the store is seeded with at startup.
type Source interface {
	Load(ctx context.Context) (models.Dataset, error)
	Close() error
}

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

type SourceConfig struct {
	Kind        string
	File        string // "" selects the embedded dataset
	PostgresDSN string
	MongoURI    string
	MongoDB     string
}

// Open connects the source named by cfg.Kind.
func Open(ctx context.Context, cfg SourceConfig) (Source, error) {
	switch cfg.Kind {
	case "", SourceFile:
		return FileSource{Path: cfg.File}, nil
	case SourcePostgres:
		src, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceMongo:
		src, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown seed source %q", cfg.Kind)
	}
}

// Seed replaces the content of store with what src yields.
func Seed(ctx context.Context, store *models.Store, src Source) error {
	ds, err := src.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load dataset")
	}
	if err := store.Load(ds); err != nil {
		return errors.Wrap(err, "seed store")
	}
	return nil
}
