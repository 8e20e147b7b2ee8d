package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInput(t *testing.T) {
	t.Helper()
	EventSystemInitialize()
	require.NoError(t, InputInitialize())
	t.Cleanup(func() {
		InputProcessKey(KEY_A, false)
		InputUpdate(0)
		InputShutdown()
		EventSystemShutdown()
	})
}

func TestKeyPressFiresOnceOnChange(t *testing.T) {
	setupInput(t)

	var pressed []KeyCode
	EventRegister(EVENT_CODE_KEY_PRESSED, nil, func(ctx EventContext) {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
	})

	require.NoError(t, InputProcessKey(KEY_A, true))
	require.NoError(t, InputProcessKey(KEY_A, true))

	assert.Equal(t, []KeyCode{KEY_A}, pressed, "repeat with no state change does not re-fire")
	assert.True(t, InputIsKeyDown(KEY_A))
	assert.False(t, InputWasKeyDown(KEY_A))
}

func TestInputUpdateRollsStateForward(t *testing.T) {
	setupInput(t)

	require.NoError(t, InputProcessKey(KEY_A, true))
	require.NoError(t, InputUpdate(0.016))

	assert.True(t, InputIsKeyDown(KEY_A))
	assert.True(t, InputWasKeyDown(KEY_A))

	require.NoError(t, InputProcessKey(KEY_A, false))
	assert.True(t, InputIsKeyUp(KEY_A))
	assert.True(t, InputWasKeyDown(KEY_A), "previous frame still shows the press")
}

func TestMouseMoveFiresOnlyOnChange(t *testing.T) {
	setupInput(t)

	moves := 0
	EventRegister(EVENT_CODE_MOUSE_MOVED, nil, func(EventContext) { moves++ })

	require.NoError(t, InputProcessMouseMove(10, 20))
	require.NoError(t, InputProcessMouseMove(10, 20))
	assert.Equal(t, 1, moves)

	x, y := InputGetMousePosition()
	assert.Equal(t, int32(10), x)
	assert.Equal(t, int32(20), y)
}

func TestButtonPressAndRelease(t *testing.T) {
	setupInput(t)

	var codes []EventCode
	record := func(ctx EventContext) { codes = append(codes, ctx.Type) }
	EventRegister(EVENT_CODE_BUTTON_PRESSED, nil, record)
	EventRegister(EVENT_CODE_BUTTON_RELEASED, nil, record)

	require.NoError(t, InputProcessButton(BUTTON_LEFT, true))
	assert.True(t, InputIsButtonDown(BUTTON_LEFT))

	require.NoError(t, InputProcessButton(BUTTON_LEFT, false))
	assert.True(t, InputIsButtonUp(BUTTON_LEFT))

	assert.Equal(t, []EventCode{EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED}, codes)
}
