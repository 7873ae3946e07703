package glimpse

import "log/slog"

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to nextTick()
	JustPressed map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
}

// InputState is the input as observed through the window callbacks. It is
// updated while events are polled.
type InputState struct {
	Keys KeysState
}

// Apply records a key event. Repeats do not change the state.
func (s *InputState) Apply(key Key, action Action) {
	switch action {
	case ActionPress:
		s.Keys.press(key)
	case ActionRelease:
		s.Keys.release(key)
	}
}

// NextTick forgets all "just pressed" keys. It is called
// right before new events are polled.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
}

func (s *InputState) IsKeyJustPressed(key Key) bool {
	return s.Keys.JustPressed[key]
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
