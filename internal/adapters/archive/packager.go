// Package archive implements the zip archiver for release packaging.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
)

// entryEpoch is the fixed timestamp stamped on every archive entry.
// Zip cannot represent times before 1980; pinning the epoch makes two runs
// over identical inputs produce byte-identical archives.
var entryEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// partialSuffix marks the unpublished archive while it is being written.
const partialSuffix = ".partial"

var _ ports.Archiver = (*Packager)(nil)

// Packager implements ports.Archiver using archive/zip.
type Packager struct {
	hasher ports.Hasher
	logger ports.Logger
}

// NewPackager creates a new Packager.
func NewPackager(hasher ports.Hasher, logger ports.Logger) *Packager {
	return &Packager{
		hasher: hasher,
		logger: logger,
	}
}

// Pack writes all manifest artifacts into a single zip archive at outPath.
//
// Entries are written in manifest order, never filesystem enumeration order,
// at <triple>/<archive_name>. The archive is assembled at a temporary path
// and renamed to outPath only after the writer is closed cleanly and the
// checksum sidecar is written; any failure removes the temporary files, so a
// partial archive is never published.
func (p *Packager) Pack(ctx context.Context, manifest *domain.Manifest, outPath string) (string, string, error) {
	if outPath == "" {
		outPath = manifest.Output
	}

	partial := outPath + partialSuffix
	sumPath := outPath + ".sum"

	if err := p.writeArchive(ctx, manifest, partial); err != nil {
		p.discard(partial)
		return "", "", err
	}

	if err := p.writeChecksums(manifest, partial, sumPath); err != nil {
		p.discard(partial)
		p.discard(sumPath)
		return "", "", err
	}

	if err := os.Rename(partial, outPath); err != nil {
		p.discard(partial)
		p.discard(sumPath)
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()), "path", outPath)
	}

	p.logger.Info("archive published: " + outPath)
	return outPath, sumPath, nil
}

func (p *Packager) writeArchive(ctx context.Context, manifest *domain.Manifest, partial string) error {
	f, err := os.Create(partial) //nolint:gosec // output path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()), "path", partial)
	}

	zw := zip.NewWriter(f)

	for target := range manifest.Targets() {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			_ = f.Close()
			return zerr.Wrap(err, "packaging canceled")
		}
		if err := p.writeEntry(zw, manifest.Root, target); err != nil {
			_ = zw.Close()
			_ = f.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, domain.ErrArchiveWrite.Error())
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()), "path", partial)
	}
	return nil
}

// writeEntry copies one artifact into the archive under the target's
// triple-scoped entry path.
func (p *Packager) writeEntry(zw *zip.Writer, root string, target domain.TargetSpec) error {
	src := filepath.Join(root, target.ArtifactPath.String())

	in, err := os.Open(src) //nolint:gosec // path comes from the validated manifest
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()),
			"triple", target.Triple.String()), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only file

	header := &zip.FileHeader{
		Name:     target.EntryPath(),
		Method:   zip.Deflate,
		Modified: entryEpoch,
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()), "entry", header.Name)
	}
	if _, err := io.Copy(w, in); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrArchiveWrite.Error()),
			"triple", target.Triple.String()), "entry", header.Name)
	}
	return nil
}

// writeChecksums writes the sidecar: one xxhash64 line per entry in manifest
// order, plus one for the archive itself.
func (p *Packager) writeChecksums(manifest *domain.Manifest, archivePath, sumPath string) error {
	var b strings.Builder

	for target := range manifest.Targets() {
		src := filepath.Join(manifest.Root, target.ArtifactPath.String())
		sum, err := p.hasher.ComputeFileHash(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to checksum artifact"), "triple", target.Triple.String())
		}
		fmt.Fprintf(&b, "%016x  %s\n", sum, target.EntryPath())
	}

	sum, err := p.hasher.ComputeFileHash(archivePath)
	if err != nil {
		return zerr.Wrap(err, "failed to checksum archive")
	}
	fmt.Fprintf(&b, "%016x  %s\n", sum, filepath.Base(strings.TrimSuffix(archivePath, partialSuffix)))

	if err := os.WriteFile(sumPath, []byte(b.String()), 0o644); err != nil { //nolint:gosec // sidecar next to user-chosen output
		return zerr.With(zerr.Wrap(err, "failed to write checksum file"), "path", sumPath)
	}
	return nil
}

func (p *Packager) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("failed to remove " + path + ": " + err.Error())
	}
}
