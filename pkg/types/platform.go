package types

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// Platform identifies an operating system family a mod declares support for
type Platform string

const (
	PlatformUniversal Platform = "universal"
	PlatformWindows   Platform = "windows"
	PlatformLinux     Platform = "linux"
	PlatformAndroid   Platform = "android"
	PlatformMac       Platform = "mac"
)

// CurrentPlatform maps GOOS to a Platform
func CurrentPlatform() Platform {
	return PlatformForGOOS(runtime.GOOS)
}

// PlatformForGOOS maps a GOOS value to a Platform
func PlatformForGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return PlatformWindows
	case "android":
		return PlatformAndroid
	case "darwin", "ios":
		return PlatformMac
	default:
		return PlatformLinux
	}
}

// UnmarshalText normalizes case and rejects unknown names. The legacy
// windows_x86/windows_x64 names fold into windows.
func (p *Platform) UnmarshalText(text []byte) error {
	v := Platform(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case "windows_x86", "windows_x64":
		v = PlatformWindows
	case PlatformUniversal, PlatformWindows, PlatformLinux, PlatformAndroid, PlatformMac:
	default:
		return fmt.Errorf("unknown platform %q", string(text))
	}
	*p = v
	return nil
}

// Platforms is a declared compatibility list. Empty means universal.
type Platforms []Platform

// IsCompatible reports whether p is supported by the list
func (ps Platforms) IsCompatible(p Platform) bool {
	if len(ps) == 0 || slices.Contains(ps, PlatformUniversal) {
		return true
	}
	return slices.Contains(ps, p)
}
