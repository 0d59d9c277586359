// Package store is the optional Solve Store (§4.17): an in-memory,
// TTL-bounded proposal cache for the async HTTP retrieval flow, ported
// from the teacher's proposalStore (schedule_generator_service.go) in
// shape (mutex-guarded map, lazy expiry on Get), plus a background
// sweep goroutine the teacher's version never ran, an optional
// Redis write-through/read-through layer so multiple solver-server
// replicas can share proposals, and an optional sqlx-backed audit log
// of solve runs.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/maktab-edu/timetable-solver/internal/dto"
)

// Proposal is one computed solve response held for later HTTP
// retrieval/export under its id.
type Proposal struct {
	ID        string
	Response  dto.SuccessResponse
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ProposalStore is a mutex-guarded, TTL-bounded map of Proposal,
// mirroring the teacher's proposalStore, with an optional Redis tier
// behind it: when redis is non-nil, Save writes through and Get reads
// through on a local miss, so a proposal created on one solver-server
// replica can be fetched from another.
type ProposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]Proposal
	redis *redis.Client

	stop chan struct{}
	once sync.Once
}

// NewProposalStore builds a store with the given TTL, defaulting to 30
// minutes the way the teacher's newProposalStore does. redisClient may
// be nil, in which case the store is in-memory only.
func NewProposalStore(ttl time.Duration, redisClient *redis.Client) *ProposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ProposalStore{
		ttl:   ttl,
		items: make(map[string]Proposal),
		redis: redisClient,
		stop:  make(chan struct{}),
	}
}

// Save assigns a new id to resp, stores it, and returns the id.
func (s *ProposalStore) Save(resp dto.SuccessResponse) string {
	id := uuid.NewString()
	now := time.Now().UTC()
	p := Proposal{ID: id, Response: resp, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}

	s.mu.Lock()
	s.items[id] = p
	s.mu.Unlock()

	s.writeThrough(p)
	return id
}

// Get fetches a proposal by id, reporting a miss for both an unknown
// id and one whose TTL has elapsed since it was saved. A local miss
// falls back to Redis, if configured, so a proposal saved by another
// replica is still found.
func (s *ProposalStore) Get(id string) (Proposal, bool) {
	s.mu.RLock()
	p, ok := s.items[id]
	s.mu.RUnlock()

	if ok {
		if time.Now().UTC().After(p.ExpiresAt) {
			s.Delete(id)
			return Proposal{}, false
		}
		return p, true
	}
	return s.readThrough(id)
}

// Delete removes a proposal, if present, from both the local map and
// the shared Redis tier.
func (s *ProposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()

	if s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.redis.Del(ctx, redisKey(id)) //nolint:errcheck
}

func (s *ProposalStore) writeThrough(p Proposal) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.redis.Set(ctx, redisKey(p.ID), raw, s.ttl) //nolint:errcheck
}

func (s *ProposalStore) readThrough(id string) (Proposal, bool) {
	if s.redis == nil {
		return Proposal{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := s.redis.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		return Proposal{}, false
	}
	var p Proposal
	if err := json.Unmarshal(raw, &p); err != nil {
		return Proposal{}, false
	}
	if time.Now().UTC().After(p.ExpiresAt) {
		return Proposal{}, false
	}

	s.mu.Lock()
	s.items[id] = p
	s.mu.Unlock()
	return p, true
}

func redisKey(id string) string {
	return "solver:proposal:" + id
}

// StartSweeper runs a background goroutine that evicts expired
// proposals every interval, until Stop is called. Safe to omit: Get
// expires lazily on its own, this only bounds memory for ids nobody
// ever re-fetches. Only the local map is swept; Redis keys carry their
// own TTL and expire on their own.
func (s *ProposalStore) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the sweeper goroutine started by StartSweeper. Safe to
// call multiple times or without a prior StartSweeper.
func (s *ProposalStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *ProposalStore) sweep() {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.items {
		if now.After(p.ExpiresAt) {
			delete(s.items, id)
		}
	}
}
