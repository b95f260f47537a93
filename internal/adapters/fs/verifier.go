// Package fs provides filesystem adapters: artifact verification and hashing.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
)

var _ ports.ArtifactVerifier = (*Verifier)(nil)

// Verifier implements ports.ArtifactVerifier against the local filesystem.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify resolves the target's artifact path against root and classifies it.
// A zero-length file counts as empty rather than present: it is usually the
// trace of a silently failed build. Directories are not valid artifacts and
// count as missing.
func (v *Verifier) Verify(root string, target domain.TargetSpec) (domain.ArtifactStatus, error) {
	path := filepath.Join(root, target.ArtifactPath.String())

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.StatusMissing, nil
		}
		return domain.StatusMissing, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}

	if info.IsDir() {
		return domain.StatusMissing, nil
	}
	if info.Size() == 0 {
		return domain.StatusEmpty, nil
	}
	return domain.StatusPresent, nil
}
