package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relpack/relpack/internal/adapters/logger"
	"github.com/relpack/relpack/internal/core/ports"
)

func TestLogger_ImplementsPort(t *testing.T) {
	var log ports.Logger = logger.New()

	var buf bytes.Buffer
	log.(*logger.Logger).SetOutput(&buf)

	log.Info("building x86_64-linux")
	log.Warn("artifact larger than expected")
	log.Error(errors.New("archive write failed"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "building x86_64-linux")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "archive write failed")
}
