package chained

import (
	"strconv"
	"testing"

	"github.com/scottcagno/robinhood/pkg/hasher"
	"github.com/scottcagno/robinhood/pkg/util"
)

func TestNew(t *testing.T) {
	s := New[string](128, hasher.String)
	util.AssertExpected(t, 0, s.Len())
	s.Add("0")
	util.AssertExpected(t, 1, s.Len())
	for i := 1; i < 5; i++ {
		s.Add(strconv.Itoa(i))
	}
	util.AssertExpected(t, 5, s.Len())
	util.AssertExpected(t, 128, len(s.buckets))
}

func Test_alignBucketCount(t *testing.T) {
	util.AssertExpected(t, uint64(16), alignBucketCount(0))
	util.AssertExpected(t, uint64(32), alignBucketCount(31))
	util.AssertExpected(t, uint64(16), alignBucketCount(12))
}

func Test_bucket_delete(t *testing.T) {
	b := &bucket[string]{}

	_, ok := b.delete("1")
	util.AssertFalse(t, ok)

	for i := 1; i <= 5; i++ {
		util.AssertTrue(t, b.insert(strconv.Itoa(i)))
	}
	util.AssertFalse(t, b.insert("3"))

	var count int
	b.scan(func(key string) bool {
		count++
		return true
	})
	util.AssertExpected(t, 5, count)

	for _, key := range []string{"1", "5", "3"} {
		val, ok := b.delete(key)
		util.AssertTrue(t, ok)
		util.AssertExpected(t, key, val)
	}
	_, ok = b.delete("3")
	util.AssertFalse(t, ok)

	count = 0
	b.scan(func(key string) bool {
		count++
		return true
	})
	util.AssertExpected(t, 2, count)
	util.AssertTrue(t, b.search("2"))
	util.AssertTrue(t, b.search("4"))
}

func TestSet_Workload(t *testing.T) {
	s := New[int](0, nil)
	for i := 0; i < 100000; i++ {
		util.AssertTrue(t, s.Add(i))
	}
	util.AssertFalse(t, s.Add(18))
	util.AssertExpected(t, 100000, s.Len())
	util.AssertPowerOfTwo(t, len(s.buckets))
	if s.PercentFull() > loadFactor {
		t.Errorf("load %.3f exceeds %.2f", s.PercentFull(), loadFactor)
	}
	for i := 0; i < 50000; i++ {
		key, ok := s.Remove(i)
		util.AssertTrue(t, ok)
		util.AssertExpected(t, i, key)
	}
	util.AssertFalse(t, s.Contains(18))
	var added int
	for i := 0; i < 100000; i++ {
		if s.Add(i) {
			added++
		}
	}
	util.AssertExpected(t, 50000, added)

	var seen int
	s.Range(func(int) bool {
		seen++
		return true
	})
	util.AssertExpected(t, 100000, seen)

	seen = 0
	s.Range(func(int) bool {
		seen++
		return seen < 7
	})
	util.AssertExpected(t, 7, seen)
}
