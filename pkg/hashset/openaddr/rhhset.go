package openaddr

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
	"github.com/scottcagno/robinhood/pkg/hasher"
	"go.uber.org/zap"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotTombstone
)

// slot represents a single position in the Set table
type slot[K comparable] struct {
	state   slotState
	hashkey uint64 // mixed hash, so displacement never re-hashes the key
	key     K
}

// checkHashAndKey checks if this slot holds a live match for the specified hashkey and key
func (s *slot[K]) checkHashAndKey(hashkey uint64, key K) bool {
	return s.state == slotLive && s.hashkey == hashkey && s.key == key
}

// Set is a hash set using open addressing with robin hood displacement.
// A Set is NOT goroutine-safe; see ShardedSet.
type Set[K comparable] struct {
	hash    hasher.Func[K]
	mask    uint64 // len(slots)-1
	expand  int    // grow before inserting once size reaches this
	size    int    // live keys
	tombs   int    // tombstoned slots
	maxDisp int    // largest displacement placed since the last rehash, -1 when none
	slots   []slot[K]

	initCap int
	lf      float64
	policy  DeletionPolicy
	log     *zap.Logger
}

// New returns an empty Set with the default capacity and load factor
func New[K comparable]() *Set[K] {
	conf, _ := checkConfig[K](nil)
	return newSet(conf.Capacity, conf)
}

// NewWithCapacity returns an empty Set whose capacity is the smallest
// power of two (and at least DefaultSetSize) that is >= capacity
func NewWithCapacity[K comparable](capacity int) (*Set[K], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity=%d", capacity)
	}
	return NewWithConfig(&Config[K]{Capacity: capacity})
}

// NewWithConfig returns an empty Set configured by conf. A nil conf
// behaves like New.
func NewWithConfig[K comparable](conf *Config[K]) (*Set[K], error) {
	c, err := checkConfig(conf)
	if err != nil {
		return nil, err
	}
	return newSet(c.Capacity, c), nil
}

func newSet[K comparable](capacity int, conf *Config[K]) *Set[K] {
	n := alignSlotCount(uint(capacity))
	return &Set[K]{
		hash:    conf.Hasher,
		mask:    n - 1, // this minus one is extremely important for using a mask over modulo
		expand:  growThreshold(n, conf.LoadFactor),
		maxDisp: -1,
		slots:   make([]slot[K], n),
		initCap: int(n),
		lf:      conf.LoadFactor,
		policy:  conf.Deletion,
		log:     conf.Logger,
	}
}

// resized returns an empty Set with the same settings and n slots
func (s *Set[K]) resized(n int) *Set[K] {
	size := alignSlotCount(uint(n))
	return &Set[K]{
		hash:    s.hash,
		mask:    size - 1,
		expand:  growThreshold(size, s.lf),
		maxDisp: -1,
		slots:   make([]slot[K], size),
		initCap: s.initCap,
		lf:      s.lf,
		policy:  s.policy,
		log:     s.log,
	}
}

// dib returns the displacement of a key with the given mixed hash sitting at slot i
func (s *Set[K]) dib(hashkey uint64, i uint64) int {
	return int((i - (hashkey & s.mask)) & s.mask)
}

// Displacement returns how far slot is from the home slot of key, walking
// forward and wrapping around the end of the table
func (s *Set[K]) Displacement(key K, slot int) int {
	home := int(mix(s.hash(key)) & s.mask)
	if slot >= home {
		return slot - home
	}
	return len(s.slots) + slot - home
}

// Add inserts key if it is not already present and reports whether it was added
func (s *Set[K]) Add(key K) bool {
	return s.add(mix(s.hash(key)), key)
}

func (s *Set[K]) add(hashkey uint64, key K) bool {
	if _, ok := s.find(hashkey, key); ok {
		return false
	}
	// check and see if we need to grow first
	if s.size >= s.expand {
		s.grow()
	}
	s.insert(hashkey, key)
	return true
}

// insert places a key known not to be in the table. The growth policy
// guarantees there is a free (empty or tombstoned) slot, so the probe ends.
func (s *Set[K]) insert(hashkey uint64, key K) {
	cand := slot[K]{
		state:   slotLive,
		hashkey: hashkey,
		key:     key,
	}
	// mask the hashkey to get the home slot
	i := hashkey & s.mask
	d := 0
	for {
		cur := &s.slots[i]
		if cur.state != slotLive {
			if cur.state == slotTombstone {
				s.tombs--
			}
			*cur = cand
			s.size++
			s.observe(d)
			return
		}
		// the resident keeps the slot on ties; a richer resident is
		// evicted and carried forward with its own displacement
		if cd := s.dib(cur.hashkey, i); cd < d {
			cand, *cur = *cur, cand
			s.observe(d)
			d = cd
		}
		i = (i + 1) & s.mask
		d++
	}
}

func (s *Set[K]) observe(d int) {
	if d > s.maxDisp {
		s.maxDisp = d
	}
}

// Contains reports whether key is in the set
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.find(mix(s.hash(key)), key)
	return ok
}

// Find returns the slot index holding key, or false if key is absent
func (s *Set[K]) Find(key K) (int, bool) {
	i, ok := s.find(mix(s.hash(key)), key)
	return int(i), ok
}

// find probes at most maxDisp+1 slots starting at the home slot. An empty
// slot ends the search early; tombstones are stepped over.
func (s *Set[K]) find(hashkey uint64, key K) (uint64, bool) {
	i := hashkey & s.mask
	for n := 0; n <= s.maxDisp; n++ {
		cur := &s.slots[i]
		if cur.state == slotEmpty {
			return 0, false
		}
		if cur.checkHashAndKey(hashkey, key) {
			return i, true
		}
		i = (i + 1) & s.mask
	}
	return 0, false
}

// Remove removes key and returns it, or returns false if it was not present.
// maxDisplacement is never lowered by a removal.
func (s *Set[K]) Remove(key K) (K, bool) {
	return s.remove(mix(s.hash(key)), key)
}

func (s *Set[K]) remove(hashkey uint64, key K) (K, bool) {
	i, ok := s.find(hashkey, key)
	if !ok {
		return *new(K), false
	}
	old := s.slots[i].key
	switch s.policy {
	case BackwardShift:
		s.shiftBack(i)
	default:
		s.slots[i] = slot[K]{state: slotTombstone}
		s.tombs++
	}
	s.size--
	return old, true
}

// shiftBack empties slot i by pulling each following displaced key back
// by one, stopping at an empty slot or a key already in its home slot
func (s *Set[K]) shiftBack(i uint64) {
	for {
		next := (i + 1) & s.mask
		nb := &s.slots[next]
		if nb.state != slotLive || s.dib(nb.hashkey, next) == 0 {
			s.slots[i] = slot[K]{}
			return
		}
		s.slots[i] = *nb
		i = next
	}
}

// grow doubles the capacity
func (s *Set[K]) grow() {
	s.rehash(len(s.slots) * 2)
}

// rehash rebuilds the table with n slots from the live keys only, then
// swaps it in. Tombstones are dropped.
func (s *Set[K]) rehash(n int) {
	ns := s.resized(n)
	for i := range s.slots {
		if s.slots[i].state == slotLive {
			ns.insert(s.slots[i].hashkey, s.slots[i].key)
		}
	}
	s.log.Debug("rehashed set",
		zap.Int("from", len(s.slots)),
		zap.Int("to", len(ns.slots)),
		zap.Int("live", ns.size),
		zap.Int("tombstones", s.tombs),
		zap.Int("max-displacement", ns.maxDisp))
	*s = *ns
}

// ForEachLive calls fn with the slot index and key of every live slot in
// physical order, as long as fn returns true. It is not safe to add or
// remove keys while ranging.
func (s *Set[K]) ForEachLive(fn func(slot int, key K) bool) {
	for i := range s.slots {
		if s.slots[i].state != slotLive {
			continue
		}
		if !fn(i, s.slots[i].key) {
			return
		}
	}
}

// Range calls fn for every key in the set as long as fn returns true
func (s *Set[K]) Range(fn func(key K) bool) {
	s.ForEachLive(func(_ int, key K) bool {
		return fn(key)
	})
}

// All returns an iterator over the keys in the set
func (s *Set[K]) All() iter.Seq[K] {
	return s.Range
}

// Clear removes every key and shrinks the set back to its initial capacity
func (s *Set[K]) Clear() {
	*s = *s.resized(s.initCap)
}

// Len returns the number of keys currently in the set
func (s *Set[K]) Len() int {
	return s.size
}

// Cap returns the number of slots in the table
func (s *Set[K]) Cap() int {
	return len(s.slots)
}

// MaxDisplacement returns the largest displacement placed since the
// last rehash, or -1 if nothing has been placed
func (s *Set[K]) MaxDisplacement() int {
	return s.maxDisp
}

// PercentFull returns the current load factor of the set
func (s *Set[K]) PercentFull() float64 {
	return float64(s.size) / float64(len(s.slots))
}

// Stats is a snapshot of the table's shape
type Stats struct {
	Capacity         int
	Live             int
	Tombstones       int
	MaxDisplacement  int
	MeanDisplacement float64
	Load             float64
}

func (st Stats) String() string {
	return fmt.Sprintf("capacity=%d live=%d tombstones=%d max-displacement=%d mean-displacement=%.3f load=%.4f",
		st.Capacity, st.Live, st.Tombstones, st.MaxDisplacement, st.MeanDisplacement, st.Load)
}

// Stats walks the table and returns its current shape
func (s *Set[K]) Stats() Stats {
	st := Stats{
		Capacity:        len(s.slots),
		Live:            s.size,
		Tombstones:      s.tombs,
		MaxDisplacement: s.maxDisp,
		Load:            s.PercentFull(),
	}
	if s.size == 0 {
		return st
	}
	var total int
	for i := range s.slots {
		if s.slots[i].state == slotLive {
			total += s.dib(s.slots[i].hashkey, uint64(i))
		}
	}
	st.MeanDisplacement = float64(total) / float64(s.size)
	return st
}
