package transportcatalogue

import (
	"log"
	"os"
)

// InitLogging routes log output to stderr with timestamps down to
// microseconds. Stdout stays reserved for the response document.
func InitLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
