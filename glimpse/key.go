package glimpse

//go:generate go tool stringer -type=Key -trimprefix=Key
//go:generate go tool stringer -type=Action -trimprefix=Action

// Key identifies a keyboard key independent of the platform layer.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyD
	KeyR
	KeyS
	KeyW
)

// Action describes what happened to a key in a key event.
type Action int

const (
	ActionPress Action = iota
	ActionRelease
	ActionRepeat
)
