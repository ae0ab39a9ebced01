package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalRWMutexDisabled(t *testing.T) {
	var m OptionalRWMutex

	m.Lock()
	require.True(t, m.Mutex.TryLock())
	m.Mutex.Unlock()
	m.RLock()
	m.RUnlock()
	m.Unlock()
}

func TestOptionalRWMutexEnabled(t *testing.T) {
	m := OptionalRWMutex{UseMutex: true}

	m.RLock()
	require.False(t, m.Mutex.TryLock())
	require.True(t, m.Mutex.TryRLock())
	m.Mutex.RUnlock()
	m.RUnlock()

	m.Lock()
	require.False(t, m.Mutex.TryRLock())
	m.Unlock()
	require.True(t, m.Mutex.TryLock())
	m.Mutex.Unlock()
}
