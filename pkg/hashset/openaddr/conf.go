package openaddr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/scottcagno/robinhood/pkg/hasher"
	"github.com/scottcagno/robinhood/pkg/logging"
	"go.uber.org/zap"
)

// DeletionPolicy selects what Remove does with the vacated slot
type DeletionPolicy int

const (
	// Tombstone marks the slot as removed and leaves every other key where
	// it is. Tombstones are reclaimed by the next growth.
	Tombstone DeletionPolicy = iota
	// BackwardShift pulls the following displaced keys back one slot each,
	// so no tombstones are ever left behind.
	BackwardShift
)

func (p DeletionPolicy) String() string {
	switch p {
	case Tombstone:
		return "tombstone"
	case BackwardShift:
		return "backward-shift"
	default:
		return fmt.Sprintf("DeletionPolicy(%d)", int(p))
	}
}

// Config holds configuration settings for a Set. The zero value of every
// field selects its default.
type Config[K comparable] struct {
	Capacity   int            // initial capacity, rounded up to a power of two (min 16)
	LoadFactor float64        // live/capacity ratio that triggers growth, in (0, 1)
	Deletion   DeletionPolicy // what Remove does with the vacated slot
	Hasher     hasher.Func[K] // raw hash function for keys
	Logger     *zap.Logger    // growth events are logged at debug level
}

func (conf *Config[K]) String() string {
	return fmt.Sprintf("Capacity: %d, LoadFactor: %.2f, Deletion: %s",
		conf.Capacity, conf.LoadFactor, conf.Deletion)
}

// checkConfig is a helper to make sure the configuration options are
// correct and fills in any missing options. The caller's config is
// never modified.
func checkConfig[K comparable](conf *Config[K]) (*Config[K], error) {
	c := Config[K]{}
	if conf != nil {
		c = *conf
	}
	if c.Capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity=%d", c.Capacity)
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultSetSize
	}
	if c.LoadFactor == 0 {
		c.LoadFactor = DefaultLoadFactor
	}
	if !(c.LoadFactor > 0 && c.LoadFactor < 1) {
		return nil, errors.Wrapf(ErrInvalidLoadFactor, "load factor=%v", c.LoadFactor)
	}
	if c.Deletion != Tombstone && c.Deletion != BackwardShift {
		return nil, errors.Errorf("openaddr: unknown deletion policy %s", c.Deletion)
	}
	if c.Hasher == nil {
		c.Hasher = hasher.Comparable[K]()
	}
	if c.Logger == nil {
		c.Logger = logging.Nop()
	}
	return &c, nil
}
