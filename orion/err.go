package orion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oliverbestmann/stride/glimpse"
)

var (
	ErrInvalidState = errors.New("orion: operation not allowed in current state")
	ErrNoPlatform   = errors.New("orion: no window or renderer factory configured")
	ErrNoScene      = errors.New("orion: no scene")
)

// replaced in tests
var exit = os.Exit
var stdin io.Reader = os.Stdin
var stderr io.Writer = os.Stderr

// Fatal reports a failure the application can not recover from and terminates
// the process. If the platform layer itself failed to start and pause is set,
// it waits for a key press first so the message stays readable when the
// process was started from a desktop shell.
func Fatal(err error, pause bool) {
	slog.Error("Fatal error", slog.String("error", err.Error()))

	if pause && errors.Is(err, glimpse.ErrPlatformInit) {
		_, _ = fmt.Fprintln(stderr, "Press enter to exit")
		_, _ = bufio.NewReader(stdin).ReadByte()
	}

	exit(1)
}
