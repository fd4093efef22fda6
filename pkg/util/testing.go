package util

import (
	"reflect"
	"testing"
)

// AssertExpected reports a test error when got is not deeply equal to expected
func AssertExpected[T any](t testing.TB, expected, got T) bool {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("error, expected: %v, got: %v\n", expected, got)
		return false
	}
	return true
}

func AssertEqual[T any](t testing.TB, expected, got T) bool {
	t.Helper()
	return AssertExpected(t, expected, got)
}

func AssertTrue(t testing.TB, got bool) bool {
	t.Helper()
	return AssertExpected(t, true, got)
}

func AssertFalse(t testing.TB, got bool) bool {
	t.Helper()
	return AssertExpected(t, false, got)
}

func AssertPowerOfTwo(t testing.TB, n int) bool {
	t.Helper()
	if n <= 0 || n&(n-1) != 0 {
		t.Errorf("error, expected a power of two, got: %d\n", n)
		return false
	}
	return true
}
