// Package rooms holds the process-wide room -> meeting code registry.
//
// Entries expire lazily: an expired entry stays in the map until the next
// Lookup of that room, which removes it. There is no background sweep.
package rooms

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultTTL = 1200 * time.Second

type entry struct {
	value   string
	updated time.Time
}

type shard struct {
	codes map[string]entry
	lock  sync.Mutex
}

type Registry struct {
	shards []*shard
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Registry)

// WithShards splits the registry into n independently locked shards. Each
// room always maps to the same shard, so per-room atomicity is unchanged.
func WithShards(n int) Option {
	return func(r *Registry) {
		if n < 1 {
			n = 1
		}
		r.shards = newShards(n)
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{shards: newShards(1), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{codes: make(map[string]entry)}
	}
	return shards
}

func (r *Registry) TTL() time.Duration {
	return r.ttl
}

func (r *Registry) shardFor(room string) *shard {
	if len(r.shards) == 1 {
		return r.shards[0]
	}
	h := fnv.New32a()
	h.Write([]byte(room))
	return r.shards[h.Sum32()%uint32(len(r.shards))]
}

// Lookup returns the live code for room. Reading never refreshes the entry.
// An expired entry is removed in the same critical section.
func (r *Registry) Lookup(room string) (string, bool) {
	s := r.shardFor(room)
	s.lock.Lock()
	defer s.lock.Unlock()
	e, exists := s.codes[room]
	if !exists {
		return "", false
	}
	if r.now().Sub(e.updated) <= r.ttl {
		return e.value, true
	}
	delete(s.codes, room)
	log.Debug().Str("room", room).Msg("Evicted expired code")
	return "", false
}

// Store replaces whatever room held with code, stamped with the current time.
func (r *Registry) Store(room string, code string) {
	s := r.shardFor(room)
	s.lock.Lock()
	defer s.lock.Unlock()
	s.codes[room] = entry{value: code, updated: r.now()}
}

// Len counts entries physically present, expired ones included.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.shards {
		s.lock.Lock()
		n += len(s.codes)
		s.lock.Unlock()
	}
	return n
}
