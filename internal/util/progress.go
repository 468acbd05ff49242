package util

import (
	"fmt"
	"sync/atomic"
)

// Progress tracks completed units against a fixed total. Safe for
// concurrent Add calls from parallel batch workers.
type Progress struct {
	total int64
	done  atomic.Int64
}

// NewProgress creates a tracker for total units of work.
func NewProgress(total int64) *Progress {
	if total < 0 {
		total = 0
	}
	return &Progress{total: total}
}

// Add records n more completed units and returns the running count.
func (p *Progress) Add(n int64) int64 {
	return p.done.Add(n)
}

// Done returns the completed unit count.
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the fixed total.
func (p *Progress) Total() int64 {
	return p.total
}

// Percent returns completion as 0-100. A zero-total tracker reports 0.
func (p *Progress) Percent() int32 {
	if p.total <= 0 {
		return 0
	}
	done := min(p.done.Load(), p.total)
	return int32(done * 100 / p.total)
}

// String renders "done/total (pct%)".
func (p *Progress) String() string {
	return fmt.Sprintf("%d/%d (%d%%)", p.done.Load(), p.total, p.Percent())
}
