package netmon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for connectivity change")
		return false
	}
}

func TestSwitch_IsConnected(t *testing.T) {
	assert.True(t, New(true).IsConnected())
	assert.False(t, New(false).IsConnected())

	var zero Switch
	assert.False(t, zero.IsConnected())
}

func TestSwitch_ChangesReplaysCurrent(t *testing.T) {
	s := New(true)
	ch := s.Changes()
	assert.True(t, recv(t, ch))
}

func TestSwitch_PublishesTransitions(t *testing.T) {
	s := New(false)
	ch := s.Changes()
	assert.False(t, recv(t, ch))

	s.SetConnected(true)
	assert.True(t, recv(t, ch))

	s.SetConnected(false)
	assert.False(t, recv(t, ch))
}

func TestSwitch_NoOpOnSameState(t *testing.T) {
	s := New(false)
	ch := s.Changes()
	recv(t, ch)

	s.SetConnected(false)
	select {
	case v := <-ch:
		t.Fatalf("unexpected publish %v for unchanged state", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSwitch_SlowSubscriberSeesLatest(t *testing.T) {
	s := New(false)
	ch := s.Changes()
	// Never read the replayed value; flip twice.
	s.SetConnected(true)
	s.SetConnected(false)

	// The buffered value must be the most recent state, not the oldest.
	require.False(t, recv(t, ch))
	assert.False(t, s.IsConnected())
}
