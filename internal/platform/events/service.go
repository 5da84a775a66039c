package events

import (
	"context"
	"sort"
	"time"

	"github.com/atlashaul/portal/pkg/logger"
)

// cacheKey stores the approved events list
const cacheKey = "events:approved"

// Provider is the remote events backend
type Provider interface {
	ListEvents(ctx context.Context) ([]Event, error)
}

// Cache is a short-TTL read cache for the approved list. Cache failures
// degrade to a direct fetch, never to an error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service serves the public convoy calendar
type Service struct {
	provider Provider
	cache    Cache // nil disables caching
	ttl      time.Duration
	log      *logger.Logger
}

// NewService creates an events service. cache may be nil.
func NewService(provider Provider, cache Cache, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log.WithField("component", "events"),
	}
}

// Approved returns approved events sorted by start time ascending. Only
// approved events appear on the public calendar.
func (s *Service) Approved(ctx context.Context) ([]Event, error) {
	if s.cache != nil {
		var cached []Event
		ok, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("events cache read failed", "error", err.Error())
		} else if ok {
			return cached, nil
		}
	}

	all, err := s.provider.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	approved := make([]Event, 0, len(all))
	for _, ev := range all {
		if ev.Status == StatusApproved {
			approved = append(approved, ev)
		}
	}

	sort.Slice(approved, func(i, j int) bool {
		return approved[i].StartsAt.Before(approved[j].StartsAt)
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, approved, s.ttl); err != nil {
			s.log.Warn("events cache write failed", "error", err.Error())
		}
	}

	return approved, nil
}

// Calendar returns approved events overlapping the given range
func (s *Service) Calendar(ctx context.Context, from, to time.Time) ([]Event, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}

	approved, err := s.Approved(ctx)
	if err != nil {
		return nil, err
	}

	inRange := make([]Event, 0, len(approved))
	for _, ev := range approved {
		if ev.EndsAt.After(from) && ev.StartsAt.Before(to) {
			inRange = append(inRange, ev)
		}
	}

	return inRange, nil
}
