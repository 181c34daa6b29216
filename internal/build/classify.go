// Package build labels build artifacts as Debug or Release from the
// directories they were produced in.
package build

import "strings"

// Classification is the kind of build a file came from.
type Classification int

const (
	Unknown Classification = iota
	Debug
	Release
)

func (c Classification) String() string {
	switch c {
	case Debug:
		return "debug"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Classify scans the directory segments of path from the root down and
// returns the first one named DEBUG or RELEASE (any case). The file name
// itself is not considered. Both '\' and '/' separate segments, so Windows
// paths classify the same on every platform.
func Classify(path string) Classification {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '\\' || r == '/'
	})
	if len(segments) == 0 {
		return Unknown
	}
	for _, seg := range segments[:len(segments)-1] {
		switch strings.ToUpper(seg) {
		case "DEBUG":
			return Debug
		case "RELEASE":
			return Release
		}
	}
	return Unknown
}
