package services

import (
	"sync"
	"time"
)

// NoticeTTL is how long a transient notification stays visible.
const NoticeTTL = 3 * time.Second

// Notice is a single transient, auto-expiring message surface. Setting a
// new message resets the expiry of the previous one.
type Notice struct {
	mu    sync.Mutex
	msg   string
	timer *time.Timer
	ttl   time.Duration
}

// NewNotice builds a notice surface with the given time-to-live; a
// non-positive ttl falls back to NoticeTTL.
func NewNotice(ttl time.Duration) *Notice {
	if ttl <= 0 {
		ttl = NoticeTTL
	}
	return &Notice{ttl: ttl}
}

// Set replaces the current message and schedules its expiry.
func (n *Notice) Set(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.msg = msg
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.msg == msg {
			n.msg = ""
		}
	})
}

// Get returns the current message, or "" after expiry.
func (n *Notice) Get() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}
