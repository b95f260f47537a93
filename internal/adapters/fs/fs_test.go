package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relpack/relpack/internal/adapters/fs"
	"github.com/relpack/relpack/internal/core/domain"
)

func targetFor(artifact string) domain.TargetSpec {
	return domain.TargetSpec{
		Triple:       domain.NewInternedString("x86_64-pc-windows-gnu"),
		ArtifactPath: domain.NewInternedString(artifact),
		ArchiveName:  domain.NewInternedString(filepath.Base(artifact)),
	}
}

func TestVerifier_Verify(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "present.dll"), []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.dll"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "adir"), 0o755))

	verifier := fs.NewVerifier()

	tests := []struct {
		name     string
		artifact string
		want     domain.ArtifactStatus
	}{
		{name: "present", artifact: "present.dll", want: domain.StatusPresent},
		{name: "empty", artifact: "empty.dll", want: domain.StatusEmpty},
		{name: "missing", artifact: "missing.dll", want: domain.StatusMissing},
		{name: "directory counts as missing", artifact: "adir", want: domain.StatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := verifier.Verify(root, targetFor(tt.artifact))
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	pathA2 := filepath.Join(dir, "a2.bin")

	require.NoError(t, os.WriteFile(pathA, []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("22"), 0o644))
	require.NoError(t, os.WriteFile(pathA2, []byte("1"), 0o644))

	hasher := fs.NewHasher()

	hashA, err := hasher.ComputeFileHash(pathA)
	require.NoError(t, err)
	hashB, err := hasher.ComputeFileHash(pathB)
	require.NoError(t, err)
	hashA2, err := hasher.ComputeFileHash(pathA2)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashA2, "identical content must hash identically")
	assert.NotEqual(t, hashA, hashB, "different content must hash differently")
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	hasher := fs.NewHasher()
	_, err := hasher.ComputeFileHash(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
