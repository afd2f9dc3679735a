package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedMutex(t *testing.T) {
	mutex := NewNamedMutex()

	release, err := mutex.TryLock("alice")
	require.NoError(t, err)

	_, err = mutex.TryLock("alice")
	assert.ErrorIs(t, err, ErrNamedMutexBusy)

	releaseBob, err := mutex.TryLock("bob")
	require.NoError(t, err)
	releaseBob()

	release()
	release() // releasing twice is harmless

	release, err = mutex.TryLock("alice")
	require.NoError(t, err)
	release()
}
