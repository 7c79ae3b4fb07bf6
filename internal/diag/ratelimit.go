package diag

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// gcCycleCategory is the single category used to throttle GC-cycle log
// lines; there is exactly one collector per process (spec.md §5: "the
// runtime assumes sole ownership of the process"), so a fixed category is
// sufficient.
const gcCycleCategory = "gc-cycle"

// GCLogThrottle rate-limits repeated "GC cycle" diagnostic lines so a
// program like S3 (10^5 short-lived environments promoted and swept in a
// loop) does not flood stderr with one line per collection.
type GCLogThrottle struct {
	limiter *catrate.Limiter
}

// NewGCLogThrottle allows at most maxPerSecond GC-cycle log lines each
// second, and at most 10x that per minute, mirroring the two-window style
// catrate.NewLimiter expects.
func NewGCLogThrottle(maxPerSecond int) *GCLogThrottle {
	if maxPerSecond <= 0 {
		maxPerSecond = 5
	}
	return &GCLogThrottle{
		limiter: catrate.NewLimiter(map[time.Duration]int{
			time.Second: maxPerSecond,
			time.Minute: maxPerSecond * 10,
		}),
	}
}

// Allow reports whether a GC-cycle log line may be emitted right now.
func (t *GCLogThrottle) Allow() bool {
	if t == nil || t.limiter == nil {
		return true
	}
	_, ok := t.limiter.Allow(gcCycleCategory)
	return ok
}
