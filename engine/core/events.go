package core

import "sync"

type EventCode int

// System internal event codes. Application should use codes beyond 255.
const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data is *MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel. Data is *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data is *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// A watched shader source file changed on disk. Data is *ShaderSourceEvent.
	EVENT_CODE_SHADER_SOURCE_CHANGED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type ShaderSourceEvent struct {
	Path string
}

type FnOnEvent func(context EventContext)

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	registered map[EventCode][]registeredEvent
}

var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]registeredEvent),
		}
	})
	eventInitialized = true
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[EventCode][]registeredEvent)
	}
	eventInitialized = false
	return nil
}

// EventRegister adds a handler for the given code. Handlers run synchronously
// on the firing goroutine, in registration order. The listener identifies the
// registration for EventUnregister and may be nil for fire-and-forget
// handlers; a non-nil listener can hold at most one registration per code.
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !eventInitialized {
		return false
	}
	if listener != nil {
		for _, re := range eventState.registered[code] {
			if re.listener == listener {
				return false
			}
		}
	}
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// EventUnregister removes listener's registration for the given code.
func EventUnregister(code EventCode, listener interface{}) bool {
	if !eventInitialized || listener == nil {
		return false
	}
	events := eventState.registered[code]
	for i, re := range events {
		if re.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

func EventFire(context EventContext) bool {
	if !eventInitialized {
		return false
	}
	handlers := eventState.registered[context.Type]
	if len(handlers) == 0 {
		return false
	}
	for _, h := range handlers {
		h.callback(context)
	}
	return true
}
