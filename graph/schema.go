package graph

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const (
	// VersionV1 serves the read-only query surface.
	VersionV1 = "v1"
	// VersionV2 adds the create/update/delete mutations.
	VersionV2 = "v2"
)

//go:embed schema/query.graphql
var querySDL string

//go:embed schema/mutation.graphql
var mutationSDL string

// SDL returns the schema document served for version.
func SDL(version string) (string, error) {
	switch version {
	case VersionV1:
		return querySDL, nil
	case VersionV2:
		return querySDL + "\n" + mutationSDL, nil
	default:
		return "", fmt.Errorf("unknown schema version %q", version)
	}
}

// NewSchema parses the schema of r.Version and binds it to r.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	sdl, err := SDL(r.Version)
	if err != nil {
		return nil, err
	}

	var root interface{}
	if r.Version == VersionV1 {
		root = &readOnlyRoot{&queryResolver{r}}
	} else {
		root = &readWriteRoot{&queryResolver{r}, &mutationResolver{r}}
	}

	opts := []graphql.SchemaOpt{
		graphql.Logger(panicLogger{r.logger()}),
		graphql.MaxDepth(16),
	}
	return graphql.ParseSchema(sdl, root, opts...)
}

type readOnlyRoot struct{ *queryResolver }

type readWriteRoot struct {
	*queryResolver
	*mutationResolver
}

// panicLogger reports resolver panics; the engine turns them into field errors.
type panicLogger struct{ l *zap.Logger }

func (p panicLogger) LogPanic(ctx context.Context, value interface{}) {
	p.l.Error("graphql: panic occurred", zap.Any("panic", value), zap.Stack("stack"))
}
