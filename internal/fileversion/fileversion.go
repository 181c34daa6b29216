// Package fileversion reads the product version embedded in a build
// artifact: the VS_VERSIONINFO resource of a Windows PE image, or the main
// module version recorded in a Go binary.
package fileversion

import (
	"debug/buildinfo"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saferwall/pe"
	pelog "github.com/saferwall/pe/log"
)

// ErrNoVersion is returned when the file carries no version metadata.
var ErrNoVersion = errors.New("no version metadata")

// Reader looks up a file's product version.
type Reader interface {
	ProductVersion(path string) (string, error)
}

// Binary is the Reader for executables and libraries on disk.
type Binary struct{}

func (Binary) ProductVersion(path string) (string, error) {
	return Read(path)
}

// Read returns the product version of the file at path. A PE image without
// a version resource (a Go binary built for Windows, say) falls through to
// the Go build info.
func Read(path string) (string, error) {
	if v := fromPE(path); v != "" {
		return v, nil
	}

	bi, err := buildinfo.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrNoVersion)
	}
	if v := goVersion(bi); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrNoVersion)
}

// peOptions skips every data directory except resources.
var peOptions = pe.Options{
	OmitExportDirectory:        true,
	OmitImportDirectory:        true,
	OmitExceptionDirectory:     true,
	OmitSecurityDirectory:      true,
	OmitRelocDirectory:         true,
	OmitDebugDirectory:         true,
	OmitArchitectureDirectory:  true,
	OmitGlobalPtrDirectory:     true,
	OmitTLSDirectory:           true,
	OmitLoadConfigDirectory:    true,
	OmitBoundImportDirectory:   true,
	OmitIATDirectory:           true,
	OmitDelayImportDirectory:   true,
	OmitCLRHeaderDirectory:     true,
	OmitCLRMetadata:            true,
	DisableCertValidation:      true,
	DisableSignatureValidation: true,
}

// fromPE returns the version strings' product version, or "" when path is
// not a PE image or has none.
func fromPE(path string) string {
	opts := peOptions
	opts.Logger = parserLog{slog.Default()}

	f, err := pe.New(path, &opts)
	if err != nil {
		return ""
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		slog.Debug("not a PE image", "path", path, "error", err)
		return ""
	}
	strs, err := f.ParseVersionResources()
	if err != nil {
		slog.Debug("reading version resource failed", "path", path, "error", err)
	}
	return pickVersion(strs)
}

// pickVersion prefers ProductVersion and falls back to FileVersion.
func pickVersion(strs map[string]string) string {
	for _, k := range []string{"ProductVersion", "FileVersion"} {
		if v := strings.TrimSpace(strings.TrimRight(strs[k], "\x00")); v != "" {
			return v
		}
	}
	return ""
}

func goVersion(bi *buildinfo.BuildInfo) string {
	v := bi.Main.Version
	if v == "" || v == "(devel)" {
		return ""
	}
	return strings.TrimPrefix(v, "v")
}

// parserLog sends the PE parser's diagnostics to slog at debug level.
type parserLog struct {
	l *slog.Logger
}

func (p parserLog) Log(level pelog.Level, keyvals ...any) error {
	p.l.Debug("pe parser", append([]any{"level", level.String()}, keyvals...)...)
	return nil
}
