package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the release version, set at build time with
// -ldflags "-X github.com/traceway/traceway-tui/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args (without the program name) ask for the
// version. Checked before flag parsing so it works alongside bad flags.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "traceway-tui %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
