package jieba

import (
	"io"

	"github.com/rs/zerolog"
)

// logger is the package-wide structured logger. It defaults to a disabled
// sink so embedding an unconfigured jieba never writes to stderr; callers
// opt in with SetLogger. Wiring a sink/level is an application concern
// (out of scope for this library), but logging through zerolog instead of
// fmt.Println/log.Fatal is not.
var logger = zerolog.New(io.Discard)

// SetLogger installs l as the destination for this package's structured
// debug/warning messages (dictionary reads and parsing, cache loads and
// write failures, failed lazy initialization in the cut entry points).
// Passing the zero Logger silences output again.
func SetLogger(l zerolog.Logger) {
	logger = l
}
