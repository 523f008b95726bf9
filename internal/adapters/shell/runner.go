// Package shell runs the external tools that flowlock delegates to.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Command describes one subprocess invocation.
type Command struct {
	// Args is the argv, Args[0] being the program.
	Args []string
	// Dir is the working directory. Empty means the project root.
	Dir string
	// Stdin is fed to the process when non-nil.
	Stdin []byte
}

// Runner executes commands with the project's node_modules/.bin on PATH.
type Runner struct {
	logger ports.Logger
	root   string
	env    map[string]string
}

// NewRunner creates a Runner rooted at cfg.Root.
func NewRunner(logger ports.Logger, cfg *domain.Config) *Runner {
	return &Runner{
		logger: logger,
		root:   cfg.Root,
		env:    cfg.Environment,
	}
}

// Run executes cmd and returns its captured standard output.
// The environment is the process environment, with node_modules/.bin prepended
// to PATH, overridden by the configured environment.
func (r *Runner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	if len(cmd.Args) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	name := cmd.Args[0]
	cmdEnv := resolveEnvironment(os.Environ(), domain.NodeModulesBinPath(r.root), r.env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // configured tool command
	if len(c.Args) > 0 {
		c.Args[0] = name
	}

	c.Dir = r.root
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = cmdEnv
	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	stdoutLog := &logWriter{logger: r.logger}
	stderrLog := &logWriter{logger: r.logger}
	outWriters := []io.Writer{&stdout, stdoutLog}
	errWriters := []io.Writer{&stderr, stderrLog}
	if v, ok := ports.VertexFromContext(ctx); ok {
		outWriters = append(outWriters, v.Stdout())
		errWriters = append(errWriters, v.Stderr())
	}
	c.Stdout = io.MultiWriter(outWriters...)
	c.Stderr = io.MultiWriter(errWriters...)

	r.logger.Debug("running " + strings.Join(cmd.Args, " "))

	err := c.Run()
	stdoutLog.Flush()
	stderrLog.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.Wrap(err, domain.ErrCommandFailed.Error())
		wrapped = zerr.With(wrapped, "command", strings.Join(cmd.Args, " "))
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if tail := strings.TrimSpace(stderr.String()); tail != "" {
			wrapped = zerr.With(wrapped, "stderr", tail)
		}
		return stdout.Bytes(), wrapped
	}

	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the debug log, buffering partial writes.
type logWriter struct {
	logger ports.Logger
	mu     sync.Mutex
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		w.emit(w.buf[:idx])
		w.buf = w.buf[idx+1:]
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *logWriter) emit(line []byte) {
	text := strings.TrimRight(string(line), "\r")
	if text == "" {
		return
	}
	w.logger.Debug(text)
}

// resolveEnvironment merges sysEnv, a PATH prefix and overrides, in increasing priority.
func resolveEnvironment(sysEnv []string, binDir string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides)+1)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	if binDir != "" {
		if sysPath := envMap["PATH"]; sysPath != "" {
			envMap["PATH"] = binDir + string(os.PathListSeparator) + sysPath
		} else {
			envMap["PATH"] = binDir
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
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
