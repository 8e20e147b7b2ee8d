package vulkan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Device selection writes into context.Device before any handle exists, so
// the context must come out of New with the device state allocated.
func TestNewAllocatesDeviceState(t *testing.T) {
	b := New(nil)

	require.NotNil(t, b.context)
	assert.NotNil(t, b.context.Device)
	assert.True(t, b.debug)
}
