package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromName(t *testing.T) {
	port := portFromName("timerp")
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
	assert.Equal(t, port, portFromName("timerp"))
}

func TestAcquire_SecondFails(t *testing.T) {
	guard, err := acquire("127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = guard.Release() }()

	_, err = acquire(guard.Address())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestActivate_ReachesServe(t *testing.T) {
	guard, err := acquire("127.0.0.1:0")
	require.NoError(t, err)

	activated := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		guard.Serve(func() { activated <- struct{}{} })
		close(done)
	}()

	require.NoError(t, activate(guard.Address()))
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("activation not received")
	}

	require.NoError(t, guard.Release())
	assert.NoError(t, guard.Release())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Release")
	}
}

func TestRelease_Nil(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
