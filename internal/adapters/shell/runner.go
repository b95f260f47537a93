// Package shell provides the build runner adapter over os/exec.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/relpack/relpack/internal/core/domain"
	"github.com/relpack/relpack/internal/core/ports"
)

var _ ports.BuildRunner = (*Runner)(nil)

// Runner implements ports.BuildRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run invokes one external build step.
//
// The process environment is merged with the step's environment (step wins),
// and PATH lookups for a relative command name use the merged PATH. Output is
// streamed line by line to the logger and raw to the provided writers, so a
// failing build surfaces its full diagnostics. A non-zero exit status is
// returned as ErrBuildFailed carrying the exit code.
func (r *Runner) Run(ctx context.Context, step *domain.BuildStep, stdout, stderr io.Writer) error {
	if step == nil || len(step.Command) == 0 {
		return domain.ErrNoBuildStep
	}

	name := step.Command[0]
	args := step.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), step.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; keep the
	// command name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	if step.WorkingDir != "" {
		cmd.Dir = step.WorkingDir
	}
	cmd.Env = cmdEnv

	outLog := &lineWriter{logger: r.logger}
	errLog := &lineWriter{logger: r.logger, errStream: true}
	cmd.Stdout = io.MultiWriter(stdout, outLog)
	cmd.Stderr = io.MultiWriter(stderr, errLog)

	runErr := cmd.Run()
	outLog.flush()
	errLog.flush()

	if err := runErr; err != nil {
		exitCode := -1 // unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "exit_code", exitCode)
		return zerr.With(wrapped, "command", name)
	}

	return nil
}

// lineWriter forwards process output to the logger one line at a time.
type lineWriter struct {
	logger    ports.Logger
	errStream bool
	buf       strings.Builder
}

func (w *lineWriter) Write(p []byte) (n int, err error) {
	w.buf.Write(p)
	for {
		s := w.buf.String()
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		w.emit(s[:i])
		w.buf.Reset()
		w.buf.WriteString(s[i+1:])
	}
	return len(p), nil
}

// flush emits any trailing output that never got a newline.
func (w *lineWriter) flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line string) {
	if line == "" {
		return
	}
	if w.errStream {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}

// resolveEnvironment merges the process environment with the step's
// environment. Step entries win, except PATH which is prepended to the
// process PATH.
func resolveEnvironment(sysEnv []string, stepEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(stepEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range stepEnv {
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
				continue
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
