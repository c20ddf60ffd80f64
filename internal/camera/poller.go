package camera

import (
	"sync"
	"time"
)

// Scheduler runs f once after d on the UI thread.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Poller drives a self-rescheduling tick. The activity flag is checked after
// every tick; clearing it lets the pending tick run out without
// rescheduling. Each Start begins a new generation so a tick left over from
// an earlier cycle never runs, which keeps at most one cycle alive.
type Poller struct {
	scheduler Scheduler
	interval  time.Duration

	mu         sync.Mutex
	active     bool
	generation uint64
	pending    int
	ticks      uint64
}

// NewPoller creates an idle poller.
func NewPoller(scheduler Scheduler, interval time.Duration) *Poller {
	return &Poller{
		scheduler: scheduler,
		interval:  interval,
	}
}

// Start raises the activity flag and schedules the first tick. It returns
// false if a cycle is already active.
func (p *Poller) Start(tick func()) bool {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return false
	}
	p.active = true
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	p.schedule(gen, tick)
	return true
}

// Stop lowers the activity flag. The next scheduled tick sees it and does
// not reschedule.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}

// Active returns the camera activity flag.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Ticks returns how many ticks have run since creation.
func (p *Poller) Ticks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

func (p *Poller) schedule(gen uint64, tick func()) {
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()

	p.scheduler.AfterFunc(p.interval, func() {
		p.run(gen, tick)
	})
}

func (p *Poller) run(gen uint64, tick func()) {
	p.mu.Lock()
	p.pending--
	live := p.active && gen == p.generation
	if live {
		p.ticks++
	}
	p.mu.Unlock()

	if !live {
		return
	}

	tick()

	p.mu.Lock()
	again := p.active && gen == p.generation
	p.mu.Unlock()

	if again {
		p.schedule(gen, tick)
	}
}
