package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf), buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("configuring")
	lg.Warn("careful")

	assert.Equal(t, "configuring\n! careful\n", buf.String())
}

func TestLogger_SetVerbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetVerbose(true)
	lg.Debug("phase timings")
	lg.SetVerbose(false)
	lg.Debug("hidden again")

	assert.Equal(t, "● phase timings\n", buf.String())
}

func TestLogger_Error_SingleLine(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := domain.NewPlanError(domain.ErrInvalidJobs, domain.ErrToolchainRequired)
	lg.Error(err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Equal(t,
		"✗ Error: invalid build plan: jobs must be at least 1; windows builds require a toolchain (msvc or mingw)\n",
		out,
	)
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_Error_VerboseChain(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetVerbose(true)

	base := errors.New("permission denied")
	err := zerr.With(zerr.Wrap(zerr.Wrap(base, "failed to read config file"), "loading forge.yaml"), "path", "/src/forge.yaml")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: loading forge.yaml")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ failed to read config file")
	assert.Contains(t, out, "→ permission denied")
	assert.Contains(t, out, "path=/src/forge.yaml")
}
