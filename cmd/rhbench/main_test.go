package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/scottcagno/robinhood/pkg/hashset/openaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadBenchConfig(t *testing.T) {
	conf, err := loadBenchConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultBenchConfig(), conf)

	path := writeConfig(t, `
n = 5000
keys = "string"
impls = ["robinhood", "sharded"]
load_factor = 0.5
`)
	conf, err = loadBenchConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, conf.N)
	assert.Equal(t, keysString, conf.Keys)
	assert.Equal(t, []string{implRobinhood, implSharded}, conf.Impls)
	assert.Equal(t, 0.5, conf.LoadFactor)
	assert.Equal(t, int64(1), conf.Seed, "unset keys keep their defaults")
	assert.NoError(t, checkBenchConfig(conf))

	_, err = loadBenchConfig(writeConfig(t, "n = 10\nwarp = 9\n"))
	assert.ErrorContains(t, err, "warp")

	_, err = loadBenchConfig(writeConfig(t, "n = \n"))
	assert.Error(t, err)

	_, err = loadBenchConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestCheckBenchConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *benchConfig)
		errMsg string
	}{
		{"too few keys", func(c *benchConfig) { c.N = 10 }, "at least"},
		{"bad key type", func(c *benchConfig) { c.Keys = "float" }, "keys must be"},
		{"no impls", func(c *benchConfig) { c.Impls = nil }, "no implementations"},
		{"unknown impl", func(c *benchConfig) { c.Impls = []string{"cuckoo"} }, "cuckoo"},
		{"negative capacity", func(c *benchConfig) { c.Capacity = -1 }, "capacity"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			conf := defaultBenchConfig()
			test.modify(conf)
			assert.ErrorContains(t, checkBenchConfig(conf), test.errMsg)
		})
	}
}

func phaseCounts(r report) map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Phases {
		counts[p.Name] = p.Count
	}
	return counts
}

func TestRunBench(t *testing.T) {
	for _, keys := range []string{keysInt, keysString} {
		t.Run(keys, func(t *testing.T) {
			conf := defaultBenchConfig()
			conf.N = 2000
			conf.Keys = keys
			conf.Impls = knownImpls
			reports, err := runBench(conf, zaptest.NewLogger(t))
			require.NoError(t, err)
			require.Len(t, reports, len(knownImpls)+2)

			for _, r := range reports[:len(knownImpls)] {
				counts := phaseCounts(r)
				assert.Equalf(t, 2000, counts["add"], "%s add", r.Impl)
				assert.Equalf(t, 1, counts["contains-18"], "%s contains-18", r.Impl)
				assert.Equalf(t, 2000, counts["contains"], "%s contains", r.Impl)
				assert.Equalf(t, 1000, counts["remove-half"], "%s remove-half", r.Impl)
				assert.Equalf(t, 0, counts["contains-18-after-remove"], "%s contains-18-after-remove", r.Impl)
				assert.Equalf(t, 1000, counts["re-add"], "%s re-add", r.Impl)
				assert.Equalf(t, 1980, counts["contains-from-20"], "%s contains-from-20", r.Impl)
			}
			rh, bi := reports[len(knownImpls)], reports[len(knownImpls)+1]
			assert.Equal(t, bi.Phases[0].Count, rh.Phases[0].Count)
		})
	}
}

func TestRunBench_BadConfig(t *testing.T) {
	conf := defaultBenchConfig()
	conf.LoadFactor = 3
	conf.N = 100
	_, err := runBench(conf, zaptest.NewLogger(t))
	assert.True(t, errors.Is(err, openaddr.ErrInvalidLoadFactor))
}

func TestRunCommand(t *testing.T) {
	path := writeConfig(t, "n = 64\nimpls = [\"robinhood\"]\n")
	out, err := execute(t, "run", "--config", path, "--impls", "chained,builtin", "--n", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "IMPL")
	assert.Contains(t, out, implChained)
	assert.Contains(t, out, implBuiltin)
	assert.Contains(t, out, "contains-from-20")
	// impls came from the flag, not the file
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, implRobinhood+" ") {
			assert.Contains(t, line, "distinct", "only the distinct phase runs the robin hood set")
		}
	}

	_, err = execute(t, "run", "--n", "3")
	assert.Error(t, err)
}

func TestPrintCommand(t *testing.T) {
	out, err := execute(t, "print")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(scenarioKeys)+1)
	for _, key := range scenarioKeys {
		assert.Contains(t, out, ": "+strconv.Itoa(key)+" (displacement")
	}
	assert.Contains(t, lines[len(lines)-1], "capacity=16 live=8")

	out, err = execute(t, "print", "1", "2", "2", "--backward-shift")
	require.NoError(t, err)
	assert.Contains(t, out, "live=2")

	_, err = execute(t, "print", "one")
	assert.Error(t, err)

	_, err = execute(t, "print", "--capacity", "-4")
	assert.Error(t, err)
}

func TestDistinctCommand(t *testing.T) {
	out, err := execute(t, "distinct", "5", "5", "5", "7")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = execute(t, "distinct")
	assert.True(t, errors.Is(err, openaddr.ErrEmptyInput))
}
