package palette

import "time"

const (
	DefaultWarmupFrame = 20
	DefaultInterval    = 5 * time.Second
)

// Trigger decides when the palette should be rebuilt from the primary video.
type Trigger struct {
	WarmupFrame int
	Interval    time.Duration

	last      time.Time
	lastFrame int
	manual    bool
}

func NewTrigger(now time.Time) *Trigger {
	return &Trigger{
		WarmupFrame: DefaultWarmupFrame,
		Interval:    DefaultInterval,
		last:        now,
		lastFrame:   -1,
	}
}

// Request schedules an extraction on the next check.
func (t *Trigger) Request() {
	t.manual = true
}

func (t *Trigger) Pending() bool {
	return t.manual
}

// Check reports whether to extract this tick. frame is the primary video's
// current frame, ignored when hasPrimary is false. Without a primary only a
// manual request stays armed.
func (t *Trigger) Check(frame int, hasPrimary bool, now time.Time) bool {
	due := t.manual
	if now.Sub(t.last) > t.Interval {
		due = true
		t.last = now
	}
	if hasPrimary {
		if frame == t.WarmupFrame && t.lastFrame != t.WarmupFrame {
			due = true
		}
		t.lastFrame = frame
	} else {
		t.lastFrame = -1
	}
	return due && hasPrimary
}

// Extracted records a completed extraction.
func (t *Trigger) Extracted(now time.Time) {
	t.manual = false
	t.last = now
}
