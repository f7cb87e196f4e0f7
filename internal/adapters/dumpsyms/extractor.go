// Package dumpsyms provides the symbol extractor adapter that drives the external dump_syms tool.
package dumpsyms

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SymbolExtractor = (*Extractor)(nil)

// waitDelay bounds how long a cancelled tool may keep its output pipes open.
const waitDelay = 2 * time.Second

// Extractor implements ports.SymbolExtractor using os/exec.
type Extractor struct {
	logger ports.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(logger ports.Logger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// ExtractHeader runs the tool in header mode and returns the first non-empty
// line it printed, or an empty string if it printed nothing.
func (e *Extractor) ExtractHeader(ctx context.Context, tool domain.Tool, bundlePath string) (string, error) {
	args := make([]string, 0, 2)
	if tool.HeaderFlag != "" {
		args = append(args, tool.HeaderFlag)
	}
	args = append(args, bundlePath)

	out, err := e.run(ctx, tool.Path, bundlePath, args)
	if err != nil {
		return "", err
	}

	return firstLine(out), nil
}

// ExtractFull runs the tool in full mode and returns its standard output verbatim.
func (e *Extractor) ExtractFull(ctx context.Context, tool domain.Tool, bundlePath string) ([]byte, error) {
	return e.run(ctx, tool.Path, bundlePath, []string{bundlePath})
}

func (e *Extractor) run(ctx context.Context, toolPath, bundlePath string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, toolPath, args...) //nolint:gosec // user configured tool

	var stdout bytes.Buffer
	stderr := newLogWriter(e.logger, filepath.Base(bundlePath))
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = io.MultiWriter(stderr, v.Stderr())
	}
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrToolUnavailable, err.Error()), "tool", toolPath)
	}

	err := cmd.Wait()
	stderr.Flush()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, "symbol dump failed"), "tool", toolPath), "exit_code", -1)
		}

		// The exit status carries no meaning; only the shape of stdout does.
		e.logger.Debug(fmt.Sprintf("%s exited with code %d for %s", filepath.Base(toolPath), exitErr.ExitCode(), bundlePath))
	}

	return stdout.Bytes(), nil
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 4096), len(out)+1)
	for scanner.Scan() {
		if line := bytes.TrimSpace(scanner.Bytes()); len(line) > 0 {
			return string(line)
		}
	}
	return ""
}

// logWriter forwards complete lines of the tool's stderr to the logger at debug level.
type logWriter struct {
	mu     sync.Mutex
	logger ports.Logger
	prefix string
	buf    bytes.Buffer
}

func newLogWriter(logger ports.Logger, prefix string) *logWriter {
	return &logWriter{logger: logger, prefix: prefix}
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := string(bytes.TrimRight(w.buf.Next(idx+1), "\r\n"))
		w.emit(line)
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	if line == "" {
		return
	}
	w.logger.Debug(w.prefix + ": " + line)
}
