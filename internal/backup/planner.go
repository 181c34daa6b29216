// Package backup decides where a build artifact is backed up to and copies
// it there.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalambet/buildextra/internal/build"
	"github.com/kalambet/buildextra/internal/config"
	"github.com/kalambet/buildextra/internal/fileversion"
	"github.com/kalambet/buildextra/internal/privilege"
)

// Request is what the command line asks for. Target is optional.
type Request struct {
	Source string
	Target string
}

// Decision is the outcome of planning one backup.
type Decision struct {
	Source              string
	Classification      build.Classification
	Allowed             bool
	Version             string
	DestinationDir      string
	DestinationFileName string
}

// DestinationPath is the full path the source is copied to.
func (d Decision) DestinationPath() string {
	return filepath.Join(d.DestinationDir, d.DestinationFileName)
}

// Planner turns a Request into a Decision and carries it out.
type Planner struct {
	accessor *config.Accessor
	versions fileversion.Reader
	elevated func() (bool, error)
	exeDir   string
	logger   *slog.Logger
}

// Option customises a Planner.
type Option func(*Planner)

func WithVersionReader(r fileversion.Reader) Option {
	return func(p *Planner) { p.versions = r }
}

// WithPrivilegeCheck replaces the administrator-rights check.
func WithPrivilegeCheck(f func() (bool, error)) Option {
	return func(p *Planner) { p.elevated = f }
}

// WithExecutableDir sets the directory used when SavePath is empty.
func WithExecutableDir(dir string) Option {
	return func(p *Planner) { p.exeDir = dir }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

func NewPlanner(acc *config.Accessor, opts ...Option) *Planner {
	p := &Planner{
		accessor: acc,
		versions: fileversion.Binary{},
		elevated: privilege.Elevated,
		exeDir:   config.ExecutableDir(),
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Plan validates the request and works out the destination.
//
// When configuration disables backups for the source's build type, Plan
// returns the populated Decision with Allowed false together with
// ErrOperationDisabled.
func (p *Planner) Plan(req Request) (Decision, error) {
	elevated, err := p.elevated()
	if err != nil {
		return Decision{}, fmt.Errorf("%w: checking privileges: %w", ErrPermissionDenied, err)
	}
	if elevated {
		return Decision{}, fmt.Errorf("%w: refusing to run with administrator rights", ErrPermissionDenied)
	}

	if strings.TrimSpace(req.Source) == "" {
		return Decision{}, fmt.Errorf("%w: no source file given", ErrArgument)
	}
	src, err := filepath.Abs(req.Source)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: resolving %s: %w", ErrArgument, req.Source, err)
	}
	fi, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Decision{}, fmt.Errorf("%w: source file %s does not exist", ErrNotFound, src)
		}
		return Decision{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if fi.IsDir() {
		return Decision{}, fmt.Errorf("%w: source %s is a directory", ErrArgument, src)
	}

	d := Decision{Source: src, Classification: build.Classify(src)}
	if d.Classification == build.Unknown {
		return Decision{}, fmt.Errorf("%w: cannot tell whether %s is a debug or release build", ErrArgument, src)
	}

	flags := config.LoadFlags(p.accessor)
	switch {
	case d.Classification == build.Debug && flags.BackupDebugDisabled:
		return d, fmt.Errorf("%w: debug builds are not backed up (%s=true)", ErrOperationDisabled, config.BackupDebug.Name)
	case d.Classification == build.Release && flags.BackupReleaseDisabled:
		return d, fmt.Errorf("%w: release builds are not backed up (%s=true)", ErrOperationDisabled, config.BackupRelease.Name)
	}
	d.Allowed = true

	version, err := p.versions.ProductVersion(src)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: reading version of %s: %w", ErrIO, src, err)
	}
	d.Version = version

	if req.Target != "" {
		dir, err := filepath.Abs(req.Target)
		if err != nil {
			return Decision{}, fmt.Errorf("%w: resolving target %s: %w", ErrArgument, req.Target, err)
		}
		d.DestinationDir = dir
	} else {
		d.DestinationDir = filepath.Join(ResolveSavePath(flags.SavePath, p.exeDir), baseName(src))
	}
	d.DestinationFileName = FileName(d.Classification, src, version)

	p.logger.Debug("backup planned",
		"source", d.Source,
		"type", d.Classification,
		"version", d.Version,
		"destination", d.DestinationPath(),
	)
	return d, nil
}

// ResolveSavePath returns the backup root: savePath when set, else exeDir.
func ResolveSavePath(savePath, exeDir string) string {
	if strings.TrimSpace(savePath) == "" {
		return exeDir
	}
	return savePath
}

// FileName builds the backup file name: "d_" for Debug builds, then the
// source name, "_", the version and the source extension. MyApp.exe at 1.2.3
// becomes MyApp_1.2.3.exe, or d_MyApp_1.2.3.exe for a Debug build.
func FileName(c build.Classification, source, version string) string {
	var b strings.Builder
	if c == build.Debug {
		b.WriteString("d_")
	}
	b.WriteString(baseName(source))
	b.WriteString("_")
	b.WriteString(sanitize(version))
	b.WriteString(filepath.Ext(source))
	return b.String()
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sanitize replaces characters that cannot appear in a file name on
// Windows, so a free-form product version stays a single path element.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, s)
}
