package main

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/scottcagno/robinhood/pkg/hasher"
	"github.com/scottcagno/robinhood/pkg/hashset/chained"
	"github.com/scottcagno/robinhood/pkg/hashset/openaddr"
	"github.com/scottcagno/robinhood/pkg/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// set is the surface every benchmarked implementation offers
type set[K comparable] interface {
	Add(key K) bool
	Contains(key K) bool
	Remove(key K) (K, bool)
	Len() int
}

// builtinSet adapts a go map to set
type builtinSet[K comparable] map[K]struct{}

func (b builtinSet[K]) Add(key K) bool {
	if _, ok := b[key]; ok {
		return false
	}
	b[key] = struct{}{}
	return true
}

func (b builtinSet[K]) Contains(key K) bool {
	_, ok := b[key]
	return ok
}

func (b builtinSet[K]) Remove(key K) (K, bool) {
	if _, ok := b[key]; !ok {
		return *new(K), false
	}
	delete(b, key)
	return key, true
}

func (b builtinSet[K]) Len() int {
	return len(b)
}

func newImpl[K comparable](name string, conf *benchConfig, hash hasher.Func[K], lg *zap.Logger) (set[K], error) {
	rhConf := &openaddr.Config[K]{
		Capacity:   conf.Capacity,
		LoadFactor: conf.LoadFactor,
		Hasher:     hash,
		Logger:     lg.With(zap.String("impl", name)),
	}
	switch name {
	case implRobinhood:
		return openaddr.NewWithConfig(rhConf)
	case implRobinhoodShift:
		rhConf.Deletion = openaddr.BackwardShift
		return openaddr.NewWithConfig(rhConf)
	case implSharded:
		return openaddr.NewShardedSet(0, rhConf)
	case implChained:
		return chained.New(uint(conf.Capacity), hash), nil
	case implBuiltin:
		return make(builtinSet[K], conf.Capacity), nil
	}
	return nil, errors.Errorf("rhbench: unknown implementation %q", name)
}

type phaseResult struct {
	Name    string
	Elapsed time.Duration
	Count   int
}

type report struct {
	Impl   string
	Phases []phaseResult
}

// runWorkload replays the classic workload: add every key, look every key
// up, remove the first half, add everything back, then look up all but
// the first 20 keys. Keys must hold at least 21 distinct keys.
func runWorkload[K comparable](s set[K], keys []K, lg *zap.Logger) []phaseResult {
	var phases []phaseResult
	tm := util.NewTimer()
	lap := func(name string, count int) {
		p := phaseResult{Name: name, Elapsed: tm.Lap(), Count: count}
		lg.Debug("phase done", zap.String("phase", p.Name), zap.Duration("elapsed", p.Elapsed), zap.Int("count", p.Count))
		phases = append(phases, p)
	}

	for _, key := range keys {
		s.Add(key)
	}
	lap("add", s.Len())

	lap("contains-18", boolCount(s.Contains(keys[18])))

	var k int
	for _, key := range keys {
		if s.Contains(key) {
			k++
		}
	}
	lap("contains", k)

	k = 0
	for _, key := range keys[:len(keys)/2] {
		if _, ok := s.Remove(key); ok {
			k++
		}
	}
	lap("remove-half", k)

	lap("contains-18-after-remove", boolCount(s.Contains(keys[18])))

	k = 0
	for _, key := range keys {
		if s.Add(key) {
			k++
		}
	}
	lap("re-add", k)

	k = 0
	for _, key := range keys[20:] {
		if s.Contains(key) {
			k++
		}
	}
	lap("contains-from-20", k)
	return phases
}

func boolCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// runDistinct counts the distinct items with the robin hood set and with
// a go map
func runDistinct[K comparable](items []K, lg *zap.Logger) ([]report, error) {
	tm := util.NewTimer()
	n, err := openaddr.DistinctElements(items)
	if err != nil {
		return nil, err
	}
	rh := phaseResult{Name: "distinct", Elapsed: tm.Lap(), Count: n}

	seen := make(map[K]struct{})
	for _, item := range items {
		seen[item] = struct{}{}
	}
	bi := phaseResult{Name: "distinct", Elapsed: tm.Lap(), Count: len(seen)}
	if rh.Count != bi.Count {
		lg.Error("distinct counts disagree", zap.Int(implRobinhood, rh.Count), zap.Int(implBuiltin, bi.Count))
	}
	return []report{
		{Impl: implRobinhood, Phases: []phaseResult{rh}},
		{Impl: implBuiltin, Phases: []phaseResult{bi}},
	}, nil
}

func benchmark[K comparable](conf *benchConfig, keys, items []K, hash hasher.Func[K], lg *zap.Logger) ([]report, error) {
	var reports []report
	for _, name := range conf.Impls {
		s, err := newImpl(name, conf, hash, lg)
		if err != nil {
			return nil, err
		}
		func() {
			defer util.TimeThis(util.Msg(lg, "workload "+name))
			reports = append(reports, report{Impl: name, Phases: runWorkload(s, keys, lg)})
		}()
	}
	distinct, err := runDistinct(items, lg)
	if err != nil {
		return nil, err
	}
	return append(reports, distinct...), nil
}

// runBench builds the inputs for conf.Keys and runs every workload
func runBench(conf *benchConfig, lg *zap.Logger) ([]report, error) {
	if err := checkBenchConfig(conf); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(conf.Seed))
	lg.Info("starting benchmark", zap.Stringer("config", conf))
	switch conf.Keys {
	case keysString:
		keys := make([]string, conf.N)
		for i := range keys {
			keys[i] = "key-" + strconv.Itoa(i)
		}
		// 3 letters gives plenty of repeats for the distinct count
		items := util.RandStrings(rng, conf.N, 3)
		return benchmark(conf, keys, items, hasher.String, lg)
	default:
		keys := make([]int, conf.N)
		for i := range keys {
			keys[i] = i
		}
		items := util.RandInts(rng, conf.N)
		return benchmark(conf, keys, items, hasher.Integer[int], lg)
	}
}

func writeReports(w io.Writer, reports []report) error {
	tw := tabwriter.NewWriter(w, 5, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMPL\tPHASE\tELAPSED\tCOUNT\t")
	for _, r := range reports {
		for _, p := range r.Phases {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", r.Impl, p.Name, p.Elapsed.Round(time.Microsecond), p.Count)
		}
	}
	return tw.Flush()
}

func runCommand(opts *globalOptions) *cobra.Command {
	var (
		configPath string
		flagConf   benchConfig
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time bulk add/contains/remove workloads against reference sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, err := opts.logger()
			if err != nil {
				return err
			}
			defer lg.Sync()
			conf, err := loadBenchConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("n") {
				conf.N = flagConf.N
			}
			if flags.Changed("seed") {
				conf.Seed = flagConf.Seed
			}
			if flags.Changed("keys") {
				conf.Keys = flagConf.Keys
			}
			if flags.Changed("impls") {
				conf.Impls = flagConf.Impls
			}
			if flags.Changed("capacity") {
				conf.Capacity = flagConf.Capacity
			}
			if flags.Changed("load-factor") {
				conf.LoadFactor = flagConf.LoadFactor
			}
			reports, err := runBench(conf, lg)
			if err != nil {
				return err
			}
			return writeReports(cmd.OutOrStdout(), reports)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "toml file with the benchmark settings")
	flags.IntVarP(&flagConf.N, "n", "n", 0, "keys per workload")
	flags.Int64Var(&flagConf.Seed, "seed", 0, "seed for the distinct-count input")
	flags.StringVar(&flagConf.Keys, "keys", "", "key type: int or string")
	flags.StringSliceVar(&flagConf.Impls, "impls", nil, "implementations to run")
	flags.IntVar(&flagConf.Capacity, "capacity", 0, "initial capacity")
	flags.Float64Var(&flagConf.LoadFactor, "load-factor", 0, "robin hood load factor")
	return cmd
}
