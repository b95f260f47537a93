package ports

import (
	"context"

	"github.com/relpack/relpack/internal/core/domain"
)

// Archiver defines the interface for assembling the release archive.
//
//go:generate go run go.uber.org/mock/mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Pack writes all manifest artifacts into a single archive at outPath,
	// one entry per target at <triple>/<archive_name>, in manifest order.
	//
	// The archive is published atomically: it is written to a temporary path
	// and renamed only on full success, so a failed run never leaves a
	// partial archive at outPath. Returns the archive path and the path of
	// the checksum sidecar.
	Pack(ctx context.Context, manifest *domain.Manifest, outPath string) (archivePath, checksumPath string, err error)
}
