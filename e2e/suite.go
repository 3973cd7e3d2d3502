package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const runTimeout = 30 * time.Second

// Runner runs the lunatint binary inside a scratch directory
type Runner struct {
	t       *testing.T
	bin     string
	workDir string
	stdout  bytes.Buffer
	stderr  bytes.Buffer
}

// NewRunner copies the named fixtures into a temp directory. The binary comes from
// LUNATINT_BIN or PATH; the test is skipped when neither has one.
func NewRunner(t *testing.T, fixtures ...string) *Runner {
	t.Helper()

	bin := os.Getenv("LUNATINT_BIN")
	if bin == "" {
		bin = "lunatint"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		t.Skipf("lunatint binary not available: %v", err)
	}

	r := &Runner{
		t:       t,
		bin:     path,
		workDir: t.TempDir(),
	}

	for _, name := range fixtures {
		r.copyFixture(name)
	}

	return r
}

func (r *Runner) copyFixture(name string) {
	r.t.Helper()

	src, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		r.t.Fatalf("failed to open fixture: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(r.Path(name))
	if err != nil {
		r.t.Fatalf("failed to create fixture copy: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		r.t.Fatalf("failed to copy fixture: %v", err)
	}
}

// Run executes lunatint with args and returns its exit code
func (r *Runner) Run(args ...string) (int, error) {
	r.stdout.Reset()
	r.stderr.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Stdout = &r.stdout
	cmd.Stderr = &r.stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	if err != nil {
		return -1, fmt.Errorf("failed to run lunatint: %w", err)
	}

	return 0, nil
}

// Path returns the absolute path of a file in the work directory
func (r *Runner) Path(name string) string {
	return filepath.Join(r.workDir, name)
}

// ReadFile returns the contents of a file in the work directory
func (r *Runner) ReadFile(name string) []byte {
	r.t.Helper()

	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}

	return data
}

// Output returns stdout of the last run
func (r *Runner) Output() string {
	return r.stdout.String()
}

// Stderr returns stderr of the last run
func (r *Runner) Stderr() string {
	return r.stderr.String()
}
