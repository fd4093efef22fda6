package hasher

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 25 words
var words = []string{
	"reproducibility",
	"eruct",
	"acids",
	"flyspecks",
	"driveshafts",
	"volcanically",
	"discouraging",
	"acapnia",
	"phenazines",
	"hoarser",
	"abusing",
	"samara",
	"thromboses",
	"impolite",
	"drivennesses",
	"tenancy",
	"counterreaction",
	"kilted",
	"linty",
	"kistful",
	"biomarkers",
	"infusiblenesses",
	"capsulate",
	"reflowering",
	"heterophyllies",
}

func TestString(t *testing.T) {
	seen := make(map[uint64]string, len(words))
	for _, word := range words {
		hash := String(word)
		old, ok := seen[hash]
		require.Falsef(t, ok, "collision: current word: %s, old word: %s", word, old)
		seen[hash] = word
	}
	assert.Equal(t, String("acids"), Bytes([]byte("acids")))
}

func TestComparable(t *testing.T) {
	type point struct {
		x, y int
	}
	fn := Comparable[point]()
	assert.Equal(t, fn(point{1, 2}), fn(point{1, 2}))
	assert.NotEqual(t, fn(point{1, 2}), fn(point{2, 1}))

	sfn := Comparable[string]()
	seen := make(map[uint64]struct{}, len(words))
	for _, word := range words {
		seen[sfn(word)] = struct{}{}
	}
	assert.Len(t, seen, len(words))
}

func TestInteger(t *testing.T) {
	assert.Equal(t, Uint64(42), Integer(42))
	assert.Equal(t, Uint64(42), Integer(uint8(42)))
	assert.Equal(t, uint64(0), Uint64(0))

	// sequential keys must spread over the low bits
	lowBits := make(map[uint64]int)
	for i := 0; i < 1024; i++ {
		lowBits[Integer(i)&15]++
	}
	assert.Len(t, lowBits, 16)
	for bucket, n := range lowBits {
		assert.Greaterf(t, n, 16, "bucket %d only got %d keys", bucket, n)
	}
}

func BenchmarkString(b *testing.B) {
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var sum uint64
	for n := 0; n < b.N; n++ {
		sum += String(keys[n&1023])
	}
	result = sum
}

var result uint64
