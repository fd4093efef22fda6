package chained

import "github.com/scottcagno/robinhood/pkg/hasher"

const (
	loadFactor     = 0.85 // load factor must exceed 50%
	defaultSetSize = 16
)

// entryNode is a node in part of our linked list
type entryNode[K comparable] struct {
	key  K
	next *entryNode[K]
}

// bucket represents a single chain in the Set table
type bucket[K comparable] struct {
	head *entryNode[K]
}

// insert pushes key onto the chain and reports whether it was not already there
func (b *bucket[K]) insert(key K) bool {
	if b.search(key) {
		return false
	}
	b.head = &entryNode[K]{
		key:  key,
		next: b.head,
	}
	return true
}

func (b *bucket[K]) search(key K) bool {
	for current := b.head; current != nil; current = current.next {
		if current.key == key {
			return true
		}
	}
	return false
}

func (b *bucket[K]) scan(it func(key K) bool) bool {
	for current := b.head; current != nil; current = current.next {
		if !it(current.key) {
			return false
		}
	}
	return true
}

func (b *bucket[K]) delete(key K) (K, bool) {
	if b.head == nil {
		return *new(K), false
	}
	if b.head.key == key {
		ret := b.head.key
		b.head = b.head.next
		return ret, true
	}
	for previous := b.head; previous.next != nil; previous = previous.next {
		if previous.next.key == key {
			ret := previous.next.key
			previous.next = previous.next.next
			return ret, true
		}
	}
	return *new(K), false
}

// Set is a separate chaining hash set. It is the baseline the robin hood
// set gets compared against.
type Set[K comparable] struct {
	hash    hasher.Func[K]
	mask    uint64
	expand  uint
	keys    uint
	buckets []bucket[K]
}

// alignBucketCount aligns buckets to ensure all sizes are powers of two
func alignBucketCount(size uint) uint64 {
	count := uint(defaultSetSize)
	for count < size {
		count *= 2
	}
	return uint64(count)
}

// New returns a new Set instantiated with the specified size or the
// defaultSetSize, whichever is larger. A nil hash uses hasher.Comparable.
func New[K comparable](size uint, hash hasher.Func[K]) *Set[K] {
	if hash == nil {
		hash = hasher.Comparable[K]()
	}
	return newSet(size, hash)
}

func newSet[K comparable](size uint, hash hasher.Func[K]) *Set[K] {
	bukCnt := alignBucketCount(size)
	return &Set[K]{
		hash:    hash,
		mask:    bukCnt - 1,
		expand:  uint(float64(bukCnt) * loadFactor),
		buckets: make([]bucket[K], bukCnt),
	}
}

// resize grows the Set to newSize buckets. It makes a new set with the
// new size, moves everything over, and then swaps it in
func (s *Set[K]) resize(newSize uint) {
	ns := newSet(newSize, s.hash)
	for i := range s.buckets {
		s.buckets[i].scan(func(key K) bool {
			ns.buckets[ns.hash(key)&ns.mask].insert(key)
			ns.keys++
			return true
		})
	}
	*s = *ns
}

// Add inserts key if it is not already present and reports whether it was added
func (s *Set[K]) Add(key K) bool {
	// check and see if we need to resize
	if s.keys >= s.expand {
		// if we do, then double the set size
		s.resize(uint(len(s.buckets)) * 2)
	}
	if !s.buckets[s.hash(key)&s.mask].insert(key) {
		return false
	}
	s.keys++
	return true
}

// Contains reports whether key is in the set
func (s *Set[K]) Contains(key K) bool {
	return s.buckets[s.hash(key)&s.mask].search(key)
}

// Remove removes key and returns it, or returns false if it was not present
func (s *Set[K]) Remove(key K) (K, bool) {
	ret, ok := s.buckets[s.hash(key)&s.mask].delete(key)
	if ok {
		s.keys--
	}
	return ret, ok
}

// Range calls fn for every key as long as fn returns true. Range is not
// safe to perform an insert or remove operation while ranging!
func (s *Set[K]) Range(fn func(key K) bool) {
	for i := range s.buckets {
		if !s.buckets[i].scan(fn) {
			return
		}
	}
}

// PercentFull returns the current load factor of the Set
func (s *Set[K]) PercentFull() float64 {
	return float64(s.keys) / float64(len(s.buckets))
}

// Len returns the number of keys currently in the Set
func (s *Set[K]) Len() int {
	return int(s.keys)
}
