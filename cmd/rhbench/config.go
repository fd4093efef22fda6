package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	implRobinhood      = "robinhood"
	implRobinhoodShift = "robinhood-shift"
	implSharded        = "sharded"
	implChained        = "chained"
	implBuiltin        = "builtin"

	keysInt    = "int"
	keysString = "string"

	minKeyCount = 32
)

var knownImpls = []string{implRobinhood, implRobinhoodShift, implSharded, implChained, implBuiltin}

// benchConfig describes one benchmark run. It is read from a toml file and
// then overridden by any flags that were set.
type benchConfig struct {
	N          int      `toml:"n"`           // keys per workload
	Seed       int64    `toml:"seed"`        // seed for the distinct-count input
	Keys       string   `toml:"keys"`        // "int" or "string"
	Impls      []string `toml:"impls"`       // implementations to run, in order
	Capacity   int      `toml:"capacity"`    // initial capacity, 0 for default
	LoadFactor float64  `toml:"load_factor"` // robin hood load factor, 0 for default
}

func defaultBenchConfig() *benchConfig {
	return &benchConfig{
		N:     1000000,
		Seed:  1,
		Keys:  keysInt,
		Impls: []string{implRobinhood, implRobinhoodShift, implChained, implBuiltin},
	}
}

func (conf *benchConfig) String() string {
	return fmt.Sprintf("N: %d, Seed: %d, Keys: %s, Impls: %s, Capacity: %d, LoadFactor: %.2f",
		conf.N, conf.Seed, conf.Keys, strings.Join(conf.Impls, ","), conf.Capacity, conf.LoadFactor)
}

// loadBenchConfig decodes path over the defaults. An empty path returns
// the defaults.
func loadBenchConfig(path string) (*benchConfig, error) {
	conf := defaultBenchConfig()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "rhbench: decoding config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("rhbench: unknown config keys in %s: %v", path, undecoded)
	}
	return conf, nil
}

// checkBenchConfig makes sure the settings can drive a workload
func checkBenchConfig(conf *benchConfig) error {
	if conf.N < minKeyCount {
		return errors.Errorf("rhbench: n must be at least %d, got %d", minKeyCount, conf.N)
	}
	if conf.Keys != keysInt && conf.Keys != keysString {
		return errors.Errorf("rhbench: keys must be %q or %q, got %q", keysInt, keysString, conf.Keys)
	}
	if len(conf.Impls) == 0 {
		return errors.New("rhbench: no implementations selected")
	}
	for _, impl := range conf.Impls {
		if !slices.Contains(knownImpls, impl) {
			return errors.Errorf("rhbench: unknown implementation %q (known: %s)",
				impl, strings.Join(knownImpls, ", "))
		}
	}
	if conf.Capacity < 0 {
		return errors.Errorf("rhbench: capacity must not be negative, got %d", conf.Capacity)
	}
	return nil
}
