package subprocess

import (
	"bytes"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
)

// maxStderrBufferSize caps the stderr tail kept for error reports. Lines
// beyond the cap still reach the logger and callback.
const maxStderrBufferSize = 64 * 1024

// Command returns an unstarted command for the server at path. The child
// inherits the parent environment plus env, with env winning on conflicts.
func Command(path string, args []string, env map[string]string) *exec.Cmd {
	//nolint:gosec // G204: the server path comes from discovery or explicit configuration
	cmd := exec.Command(path, args...)

	if len(env) > 0 {
		cmd.Env = os.Environ()
		for _, k := range slices.Sorted(maps.Keys(env)) {
			cmd.Env = append(cmd.Env, k+"="+env[k])
		}
	}

	return cmd
}

// StderrBuffer is an io.Writer for a server's stderr. Each complete line is
// logged at debug level and passed to the callback, and the most recent
// output is kept for String.
type StderrBuffer struct {
	log      *slog.Logger
	callback func(string)

	mu      sync.Mutex
	partial []byte
	tail    []string
	size    int
}

// NewStderrBuffer creates a StderrBuffer. Both arguments may be nil.
func NewStderrBuffer(log *slog.Logger, callback func(string)) *StderrBuffer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &StderrBuffer{log: log, callback: callback}
}

// Write implements io.Writer. It never fails.
func (b *StderrBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()

	b.partial = append(b.partial, p...)

	var lines []string

	for {
		i := bytes.IndexByte(b.partial, '\n')
		if i < 0 {
			break
		}

		line := strings.TrimRight(string(b.partial[:i]), "\r")
		b.partial = b.partial[i+1:]

		b.keep(line)
		lines = append(lines, line)
	}

	b.mu.Unlock()

	for _, line := range lines {
		b.log.Debug("Server stderr", "line", line)

		if b.callback != nil {
			b.callback(line)
		}
	}

	return len(p), nil
}

// keep appends line to the tail, dropping the oldest lines past the cap.
func (b *StderrBuffer) keep(line string) {
	b.tail = append(b.tail, line)
	b.size += len(line) + 1

	for b.size > maxStderrBufferSize && len(b.tail) > 1 {
		b.size -= len(b.tail[0]) + 1
		b.tail = b.tail[1:]
	}
}

// String returns the retained output, including an unterminated last line.
func (b *StderrBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := strings.Join(b.tail, "\n")
	if len(b.partial) > 0 {
		if out != "" {
			out += "\n"
		}

		out += string(b.partial)
	}

	return strings.TrimSpace(out)
}
