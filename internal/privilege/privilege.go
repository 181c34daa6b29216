// Package privilege reports whether the current process runs with
// administrator rights.
package privilege

// Elevated reports whether the process holds administrator or root rights.
func Elevated() (bool, error) {
	return elevated()
}
