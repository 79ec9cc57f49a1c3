package extfs

import "runtime"

// IsWindows reports whether the process runs on a Windows-family OS.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
