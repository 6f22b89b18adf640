package graph

import (
	"go.uber.org/zap"

	"eventgraph/models"
	"eventgraph/utils"
)

// Resolver carries the repositories every field resolver reads from.
type Resolver struct {
	Users        models.UserRepository
	Events       models.EventRepository
	Locations    models.LocationRepository
	Participants models.ParticipantRepository
	Invalidator  *utils.CacheInvalidator
	Logger       *zap.Logger
	Version      string
}

// NewResolver wires the in-memory repositories of s.
func NewResolver(s *models.Store, version string, inv *utils.CacheInvalidator, logger *zap.Logger) *Resolver {
	return &Resolver{
		Users:        models.NewMemUserRepository(s),
		Events:       models.NewMemEventRepository(s),
		Locations:    models.NewMemLocationRepository(s),
		Participants: models.NewMemParticipantRepository(s),
		Invalidator:  inv,
		Logger:       logger,
		Version:      version,
	}
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
