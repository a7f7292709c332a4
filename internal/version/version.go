package version

import (
	"fmt"
	"runtime/debug"
)

// Version is overridable via ldflags on release builds
var Version = "unknown"

var FullVersion string

func init() {
	if Version == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}

	FullVersion = fmt.Sprintf("omni %s", Version)
}
