package countdown

import (
	"sync"
	"time"
)

// Heartbeat fires a callback on a fixed interval until stopped.
type Heartbeat struct {
	mu       sync.Mutex
	interval time.Duration
	stopCh   chan struct{}
	running  bool
}

// NewHeartbeat creates a stopped heartbeat. Non-positive intervals fall back to one second.
func NewHeartbeat(interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = time.Second
	}
	return &Heartbeat{interval: interval}
}

// Start launches the ticking loop. Calling Start on a running heartbeat is a no-op.
func (heartbeat *Heartbeat) Start(onTick func()) {
	heartbeat.mu.Lock()
	if heartbeat.running {
		heartbeat.mu.Unlock()
		return
	}
	heartbeat.running = true
	heartbeat.stopCh = make(chan struct{})
	stopCh := heartbeat.stopCh
	heartbeat.mu.Unlock()

	go heartbeat.run(stopCh, onTick)
}

// Stop terminates the ticking loop.
func (heartbeat *Heartbeat) Stop() {
	heartbeat.mu.Lock()
	defer heartbeat.mu.Unlock()
	if !heartbeat.running {
		return
	}
	close(heartbeat.stopCh)
	heartbeat.running = false
}

// Running reports whether the loop is active.
func (heartbeat *Heartbeat) Running() bool {
	heartbeat.mu.Lock()
	defer heartbeat.mu.Unlock()
	return heartbeat.running
}

func (heartbeat *Heartbeat) run(stopCh <-chan struct{}, onTick func()) {
	ticker := time.NewTicker(heartbeat.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			onTick()
		}
	}
}
