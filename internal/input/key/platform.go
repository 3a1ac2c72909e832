package key

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnknownPlatform is returned by ParsePlatform for unrecognized names.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies the host operating system family.
type Platform uint8

const (
	// Windows is Microsoft Windows.
	Windows Platform = iota
	// Linux covers Linux and the BSDs.
	Linux
	// Mac is macOS.
	Mac
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	case Mac:
		return "Mac"
	default:
		return fmt.Sprintf("Platform(%d)", p)
	}
}

// ParsePlatform parses a platform name (case-insensitive).
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "mac", "macos", "darwin", "osx":
		return Mac, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// CurrentPlatform returns the platform the binary runs on.
func CurrentPlatform() Platform {
	return platformFromGOOS(runtime.GOOS)
}

func platformFromGOOS(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return Mac
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// CommandKey returns the key used for the primary "command" modifier:
// MetaLeft on Mac, ControlLeft everywhere else.
func CommandKey(p Platform) Code {
	if p == Mac {
		return CodeMetaLeft
	}
	return CodeControlLeft
}

// CommandModifier returns the flag set while the command key is held.
func CommandModifier(p Platform) Modifier {
	return CommandKey(p).Modifier()
}
