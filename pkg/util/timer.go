package util

import (
	"time"

	"go.uber.org/zap"
)

/*
	usage:

	func foo() {
		defer TimeThis(Msg(lg, "foo"))
		// code to measure
	}

*/

func Msg(lg *zap.Logger, msg string) (*zap.Logger, string, time.Time) {
	return lg, msg, time.Now()
}

// TimeThis logs the time elapsed since start at info level
func TimeThis(lg *zap.Logger, msg string, start time.Time) {
	lg.Info(msg, zap.Duration("elapsed", time.Since(start)))
}

// Timer measures consecutive phases of a workload
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Lap returns the time since the timer was started or last lapped and
// restarts it
func (t *Timer) Lap() time.Duration {
	now := time.Now()
	d := now.Sub(t.start)
	t.start = now
	return d
}
