package match

import (
	"sync"
	"time"
)

// sessionTimer is the single outstanding deadline of one session. Arm
// replaces any pending deadline and bumps the generation; a callback whose
// generation no longer matches is stale and must be dropped, so a timer that
// fired concurrently with a cancel can never act against a later turn.
type sessionTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func (t *sessionTimer) Arm(d time.Duration, fire func(gen uint64)) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(d, func() { fire(gen) })
	return gen
}

func (t *sessionTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// live reports whether gen still names the armed deadline.
func (t *sessionTimer) live(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil && t.gen == gen
}
