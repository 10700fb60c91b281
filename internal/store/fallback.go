package store

import (
	"context"
	"sync/atomic"

	"aisb_backend/pkg/logger"
	"aisb_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// FallbackStore serves from primary until it observes an unavailable-class
// error, then switches to local for the remainder of the process lifetime.
// The call that trips the switch is replayed against local, so the in-flight
// write is not lost.
type FallbackStore struct {
	primary    Store
	local      Store
	usingLocal atomic.Bool
}

func NewFallbackStore(primary, local Store) *FallbackStore {
	return &FallbackStore{primary: primary, local: local}
}

// UsingLocal reports whether the store has switched to the local backend.
func (s *FallbackStore) UsingLocal() bool {
	return s.usingLocal.Load()
}

func (s *FallbackStore) trip(op string, err error) bool {
	if !IsUnavailable(err) {
		return false
	}
	if s.usingLocal.CompareAndSwap(false, true) {
		monitoring.StoreFallbacks.Inc()
		logger.Log.Warn("record store unavailable, switching to local storage",
			zap.String("op", op), zap.Error(err))
	}
	return true
}

func (s *FallbackStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	if !s.usingLocal.Load() {
		id, err := s.primary.Create(ctx, collection, doc)
		if err == nil || !s.trip("create", err) {
			return id, err
		}
	}
	return s.local.Create(ctx, collection, doc)
}

func (s *FallbackStore) CreateUnique(ctx context.Context, collection, field string, value any, doc any) (string, error) {
	if !s.usingLocal.Load() {
		id, err := s.primary.CreateUnique(ctx, collection, field, value, doc)
		if err == nil || !s.trip("create_unique", err) {
			return id, err
		}
	}
	return s.local.CreateUnique(ctx, collection, field, value, doc)
}

func (s *FallbackStore) Get(ctx context.Context, collection, id string, out any) error {
	if !s.usingLocal.Load() {
		err := s.primary.Get(ctx, collection, id, out)
		if err == nil || !s.trip("get", err) {
			return err
		}
	}
	return s.local.Get(ctx, collection, id, out)
}

func (s *FallbackStore) Query(ctx context.Context, collection, field string, value any, out any) error {
	if !s.usingLocal.Load() {
		err := s.primary.Query(ctx, collection, field, value, out)
		if err == nil || !s.trip("query", err) {
			return err
		}
	}
	return s.local.Query(ctx, collection, field, value, out)
}

func (s *FallbackStore) List(ctx context.Context, collection string, out any) error {
	if !s.usingLocal.Load() {
		err := s.primary.List(ctx, collection, out)
		if err == nil || !s.trip("list", err) {
			return err
		}
	}
	return s.local.List(ctx, collection, out)
}

func (s *FallbackStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if !s.usingLocal.Load() {
		err := s.primary.Update(ctx, collection, id, patch)
		if err == nil || !s.trip("update", err) {
			return err
		}
	}
	return s.local.Update(ctx, collection, id, patch)
}
