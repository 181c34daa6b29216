//go:build windows

package privilege

import "golang.org/x/sys/windows"

// elevated checks the process token's elevation flag, which is set when UAC
// granted the administrator token.
func elevated() (bool, error) {
	return windows.GetCurrentProcessToken().IsElevated(), nil
}
