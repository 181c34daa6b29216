package backup

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// Result describes a completed copy.
type Result struct {
	Destination string
	Bytes       int64
}

// Execute creates the destination directory and copies the source into it.
// An existing directory is reused as is. An existing destination file is
// never overwritten: Execute fails with ErrIO wrapping fs.ErrExist. If the
// copy fails after the directory was created, the directory stays.
func (p *Planner) Execute(d Decision) (Result, error) {
	if !d.Allowed {
		return Result{}, fmt.Errorf("%w: %s builds are not backed up", ErrOperationDisabled, d.Classification)
	}
	if err := os.MkdirAll(d.DestinationDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: creating %s: %w", ErrIO, d.DestinationDir, err)
	}

	dst := d.DestinationPath()
	n, err := copyFile(d.Source, dst)
	if err != nil {
		return Result{}, fmt.Errorf("%w: copying %s to %s: %w", ErrIO, d.Source, dst, err)
	}

	p.logger.Info("backup complete",
		"source", d.Source,
		"destination", dst,
		"size", humanize.Bytes(uint64(n)),
	)
	return Result{Destination: dst, Bytes: n}, nil
}

// copyFile copies src to a new file at dst, keeping the source mode and
// modification time. A partially written dst is removed.
func copyFile(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			os.Remove(dst)
		}
	}()

	n, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}

	// The copy stands even if the timestamp cannot be carried over.
	_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())
	return n, nil
}
