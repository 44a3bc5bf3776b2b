package service

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"token_creator/internal/domain/entity"
)

// Notifier holds the single active notification of a view and clears it after ttl.
//
// With cancelSuperseded each notification owns its expiry timer and a replacement
// stops the previous one. Without it every timer clears whatever notification is
// present when it fires, so an old timer can cut a newer message short.
type Notifier struct {
	mu               sync.Mutex
	clock            clock.Clock
	ttl              time.Duration
	cancelSuperseded bool

	current *entity.Notification
	seq     uint64
	timer   *clock.Timer
	stopped bool

	onChange func()
	onSet    func(kind entity.NotificationKind)
}

// NewNotifier creates a Notifier. onChange is called (without locks held) after every
// set or clear; onSet after every set. Both may be nil.
func NewNotifier(clk clock.Clock, ttl time.Duration, cancelSuperseded bool, onChange func(), onSet func(entity.NotificationKind)) *Notifier {
	return &Notifier{
		clock:            clk,
		ttl:              ttl,
		cancelSuperseded: cancelSuperseded,
		onChange:         onChange,
		onSet:            onSet,
	}
}

// Set installs a notification, replacing the current one, and schedules its expiry.
func (n *Notifier) Set(message string, kind entity.NotificationKind) {
	kind = kind.Normalize()

	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	if n.cancelSuperseded && n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	id := n.seq
	n.current = &entity.Notification{
		Message:  message,
		Kind:     kind,
		IssuedAt: n.clock.Now(),
	}
	n.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(id) })
	n.mu.Unlock()

	if n.onSet != nil {
		n.onSet(kind)
	}
	n.changed()
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	if n.stopped || n.current == nil {
		n.mu.Unlock()
		return
	}
	// Stop can lose the race with a timer that is already firing.
	if n.cancelSuperseded && id != n.seq {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.mu.Unlock()

	n.changed()
}

// Current returns a copy of the active notification, or nil.
func (n *Notifier) Current() *entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	cp := *n.current
	return &cp
}

// Stop cancels the pending timer and ignores further Set calls.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopped = true
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = nil
}

func (n *Notifier) changed() {
	if n.onChange != nil {
		n.onChange()
	}
}
