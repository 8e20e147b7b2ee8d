package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFireReachesHandlersInOrder(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	var order []int
	EventRegister(EVENT_CODE_APPLICATION_QUIT, nil, func(EventContext) { order = append(order, 1) })
	EventRegister(EVENT_CODE_APPLICATION_QUIT, nil, func(EventContext) { order = append(order, 2) })

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Equal(t, []int{1, 2}, order)
}

func TestEventFireWithoutHandlers(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestEventShutdownClearsRegistrations(t *testing.T) {
	EventSystemInitialize()

	fired := false
	EventRegister(EVENT_CODE_KEY_PRESSED, nil, func(EventContext) { fired = true })
	require.NoError(t, EventSystemShutdown())

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))

	// Re-initialization starts from an empty registration table.
	EventSystemInitialize()
	defer EventSystemShutdown()
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.False(t, fired)
}

func TestEventUnregisterByListener(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	type listener struct{ hits int }
	a := &listener{}
	b := &listener{}

	require.True(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, a, func(EventContext) { a.hits++ }))
	require.True(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, b, func(EventContext) { b.hits++ }))

	// A listener holds at most one registration per code.
	assert.False(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, a, func(EventContext) {}))

	require.True(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, a))
	EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})

	assert.Equal(t, 0, a.hits)
	assert.Equal(t, 1, b.hits)

	assert.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, a), "already removed")
	assert.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, nil))
}

func TestEventPayloadsArePointers(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	var got *SystemEvent
	EventRegister(EVENT_CODE_RESIZED, nil, func(ctx EventContext) {
		got = ctx.Data.(*SystemEvent)
	})

	EventFire(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &SystemEvent{WindowWidth: 800, WindowHeight: 600},
	})

	require.NotNil(t, got)
	assert.Equal(t, uint32(800), got.WindowWidth)
	assert.Equal(t, uint32(600), got.WindowHeight)
}
