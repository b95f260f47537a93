package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"

	"github.com/relpack/relpack/internal/adapters/telemetry/progrock"
	"github.com/relpack/relpack/internal/core/ports"
)

func TestRecorder_VertexRoundTrip(t *testing.T) {
	rec := progrock.NewRecorder(vprogrock.NewTape())

	ctx, vertex := rec.Record(context.Background(), "build x86_64-linux")
	require.NotNil(t, vertex)

	got := ports.VertexFromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("compiling\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning: deprecated flag\n"))
	require.NoError(t, err)

	vertex.Complete(nil)
	assert.NoError(t, rec.Close())
}

func TestRecorder_DisplayRendersRecordedRun(t *testing.T) {
	rec := progrock.New()

	_, vertex := rec.Record(context.Background(), "build x86_64-linux")
	_, err := vertex.Stdout().Write([]byte("compiling\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	var buf bytes.Buffer
	require.NoError(t, rec.Display(&buf))
	assert.Contains(t, buf.String(), "build x86_64-linux")
	assert.NoError(t, rec.Close())
}

func TestRecorder_CompleteWithError(t *testing.T) {
	rec := progrock.NewRecorder(vprogrock.NewTape())

	_, vertex := rec.Record(context.Background(), "package")
	vertex.Complete(errors.New("archive write failed"))
	assert.NoError(t, rec.Close())
}
