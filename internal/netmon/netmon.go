// Package netmon exposes network reachability to the repositories and
// the sync service. The state is externally driven (the host platform
// owns detection); this package only consumes and fans out transitions.
package netmon

import "sync"

// Monitor is the connectivity contract. IsConnected is point-in-time and
// never blocks; Changes streams transitions with replay-latest semantics.
type Monitor interface {
	IsConnected() bool
	Changes() <-chan bool
}

// Switch is an externally driven Monitor. The zero value is offline;
// use New to pick the initial state.
type Switch struct {
	mu        sync.Mutex
	connected bool
	subs      []chan bool
}

// New creates a Switch with the given initial state.
func New(connected bool) *Switch {
	return &Switch{connected: connected}
}

// IsConnected returns the current reachability state.
func (s *Switch) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Changes returns a subscription that immediately replays the current
// state and then delivers every transition. Slow subscribers only ever
// lag by one value: a newer state overwrites an unconsumed one.
func (s *Switch) Changes() <-chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan bool, 1)
	ch <- s.connected
	s.subs = append(s.subs, ch)
	return ch
}

// SetConnected records a reachability change and notifies subscribers.
// Setting the current state again is a no-op.
func (s *Switch) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected == connected {
		return
	}
	s.connected = connected

	for _, ch := range s.subs {
		select {
		case ch <- connected:
		default:
			// Replace the stale unconsumed value.
			select {
			case <-ch:
			default:
			}
			ch <- connected
		}
	}
}
