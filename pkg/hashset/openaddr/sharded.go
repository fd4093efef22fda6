package openaddr

import (
	mathbits "math/bits"
	"sync"

	"github.com/scottcagno/robinhood/pkg/hasher"
)

type shard[K comparable] struct {
	mu  sync.RWMutex
	set *Set[K]
}

// ShardedSet spreads keys over a power-of-two number of Sets, each behind
// its own RWMutex. A shard grows under its write lock, so no reader ever
// sees it half rehashed.
type ShardedSet[K comparable] struct {
	shift  uint // 64 - log2(len(shards))
	hash   hasher.Func[K]
	shards []*shard[K]
}

// NewShardedSet returns a ShardedSet with count shards (rounded up to a
// power of two, defaultShardCount when count <= 0). conf applies to every
// shard; its Capacity is the total and is split between the shards.
func NewShardedSet[K comparable](count int, conf *Config[K]) (*ShardedSet[K], error) {
	c, err := checkConfig(conf)
	if err != nil {
		return nil, err
	}
	shCount := alignShardCount(count)
	ss := &ShardedSet[K]{
		shift:  uint(64 - mathbits.TrailingZeros64(shCount)),
		hash:   c.Hasher,
		shards: make([]*shard[K], shCount),
	}
	for i := range ss.shards {
		ss.shards[i] = &shard[K]{
			set: newSet(c.Capacity/int(shCount), c),
		}
	}
	return ss, nil
}

func alignShardCount(count int) uint64 {
	if count <= 0 {
		return defaultShardCount
	}
	n := uint64(1)
	for n < uint64(count) {
		n *= 2
	}
	return n
}

// getShard picks the shard from the high bits of the raw hash, leaving the
// low bits to the shard's own table
func (ss *ShardedSet[K]) getShard(key K) (*shard[K], uint64) {
	raw := ss.hash(key)
	return ss.shards[raw>>ss.shift], mix(raw)
}

// Add inserts key if it is not already present and reports whether it was added
func (ss *ShardedSet[K]) Add(key K) bool {
	sh, hashkey := ss.getShard(key)
	sh.mu.Lock()
	ok := sh.set.add(hashkey, key)
	sh.mu.Unlock()
	return ok
}

// Contains reports whether key is in the set
func (ss *ShardedSet[K]) Contains(key K) bool {
	sh, hashkey := ss.getShard(key)
	sh.mu.RLock()
	_, ok := sh.set.find(hashkey, key)
	sh.mu.RUnlock()
	return ok
}

// Remove removes key and returns it, or returns false if it was not present
func (ss *ShardedSet[K]) Remove(key K) (K, bool) {
	sh, hashkey := ss.getShard(key)
	sh.mu.Lock()
	old, ok := sh.set.remove(hashkey, key)
	sh.mu.Unlock()
	return old, ok
}

// Len returns the number of keys over all shards. Concurrent writers may
// make the result stale by the time it returns.
func (ss *ShardedSet[K]) Len() int {
	var length int
	for _, sh := range ss.shards {
		sh.mu.RLock()
		length += sh.set.Len()
		sh.mu.RUnlock()
	}
	return length
}

// Range calls fn for every key, one shard at a time, as long as fn returns
// true. fn runs under the shard's read lock and must not modify the set.
func (ss *ShardedSet[K]) Range(fn func(key K) bool) {
	for _, sh := range ss.shards {
		keepGoing := true
		sh.mu.RLock()
		sh.set.Range(func(key K) bool {
			keepGoing = fn(key)
			return keepGoing
		})
		sh.mu.RUnlock()
		if !keepGoing {
			return
		}
	}
}

// Stats returns the shape of every shard
func (ss *ShardedSet[K]) Stats() []Stats {
	stats := make([]Stats, len(ss.shards))
	for i, sh := range ss.shards {
		sh.mu.RLock()
		stats[i] = sh.set.Stats()
		sh.mu.RUnlock()
	}
	return stats
}
