package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/relpack/relpack/internal/adapters/telemetry"
	"github.com/relpack/relpack/internal/app"
	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports/mocks"
	"github.com/relpack/relpack/internal/engine/pipeline"
)

type appMocks struct {
	loader   *mocks.MockManifestLoader
	runner   *mocks.MockBuildRunner
	verifier *mocks.MockArtifactVerifier
	archiver *mocks.MockArchiver
	logger   *mocks.MockLogger
}

func newApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		loader:   mocks.NewMockManifestLoader(ctrl),
		runner:   mocks.NewMockBuildRunner(ctrl),
		verifier: mocks.NewMockArtifactVerifier(ctrl),
		archiver: mocks.NewMockArchiver(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	p := pipeline.New(m.runner, m.verifier, m.archiver, m.logger, telemetry.NewNoOp())
	return app.New(m.loader, p, m.logger), m
}

func testManifest(t *testing.T) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest()
	m.Root = "/src"
	m.Output = "build.zip"
	m.Build = &domain.BuildStep{Command: []string{"make"}}
	require.NoError(t, m.AddTarget(domain.TargetSpec{
		Triple:       domain.NewInternedString("x86_64-linux"),
		ArtifactPath: domain.NewInternedString("out/lib.so"),
		ArchiveName:  domain.NewInternedString("lib.so"),
	}))
	return m
}

func TestApp_Run_Success(t *testing.T) {
	a, m := newApp(t)
	manifest := testManifest(t)

	m.loader.EXPECT().Load("relpack.yaml").Return(manifest, nil)
	m.runner.EXPECT().
		Run(gomock.Any(), manifest.Build, gomock.Any(), gomock.Any()).
		Return(nil)
	m.verifier.EXPECT().
		Verify("/src", gomock.Any()).
		Return(domain.StatusPresent, nil)
	m.archiver.EXPECT().
		Pack(gomock.Any(), manifest, "").
		Return("build.zip", "build.zip.sum", nil)

	result, err := a.Run(context.Background(), app.RunOptions{ManifestPath: "relpack.yaml"})
	require.NoError(t, err)
	assert.Equal(t, domain.StageDone, result.Stage)
	assert.Equal(t, "build.zip", result.ArchivePath)
}

func TestApp_Run_LoadFailure(t *testing.T) {
	a, m := newApp(t)

	m.loader.EXPECT().Load("missing.yaml").Return(nil, domain.ErrEmptyManifest)

	result, err := a.Run(context.Background(), app.RunOptions{ManifestPath: "missing.yaml"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestApp_Run_PropagatesStageError(t *testing.T) {
	a, m := newApp(t)
	manifest := testManifest(t)

	m.loader.EXPECT().Load("relpack.yaml").Return(manifest, nil)
	m.runner.EXPECT().
		Run(gomock.Any(), manifest.Build, gomock.Any(), gomock.Any()).
		Return(domain.ErrBuildFailed)

	result, err := a.Run(context.Background(), app.RunOptions{ManifestPath: "relpack.yaml"})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.StageBuildFailed, result.Stage)

	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageBuildFailed, stageErr.Stage)
}

func TestApp_Verify_AllPresent(t *testing.T) {
	a, m := newApp(t)
	manifest := testManifest(t)

	m.loader.EXPECT().Load("relpack.yaml").Return(manifest, nil)
	m.verifier.EXPECT().
		Verify("/src", gomock.Any()).
		Return(domain.StatusPresent, nil)

	reports, err := a.Verify(context.Background(), "relpack.yaml")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusPresent, reports[0].Status)
}

func TestApp_Verify_MissingArtifact(t *testing.T) {
	a, m := newApp(t)
	manifest := testManifest(t)

	m.loader.EXPECT().Load("relpack.yaml").Return(manifest, nil)
	m.verifier.EXPECT().
		Verify("/src", gomock.Any()).
		Return(domain.StatusMissing, nil)

	reports, err := a.Verify(context.Background(), "relpack.yaml")
	require.Error(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusMissing, reports[0].Status)

	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageValidationFailed, stageErr.Stage)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}
