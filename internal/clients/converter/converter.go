// Package converter runs the external tools that translate between
// NormalizedRecord JSON and mainline game files.
package converter

//go:generate mockgen -destination=mock/mock_runner.go -package=convertermock github.com/KirkDiggler/cobblemon-transporter/internal/clients/converter Runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock"
)

// Direction selects which tool runs
type Direction int

const (
	// ToJSON converts game files into records (PB8ToJson)
	ToJSON Direction = iota
	// ToNative converts records into game files (JsonToPB8)
	ToNative
)

func (d Direction) String() string {
	switch d {
	case ToJSON:
		return "to-json"
	case ToNative:
		return "to-native"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts the String form of a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "to-json":
		return ToJSON, nil
	case "to-native":
		return ToNative, nil
	}
	return 0, errors.InvalidArgumentf("unknown conversion direction %q", s)
}

// Extensions returns the input file suffixes a direction accepts
func (d Direction) Extensions() []string {
	if d == ToNative {
		return []string{".json"}
	}
	return []string{".pb8", ".pk9", ".pa9", ".pk8", ".pb7", ".pa8"}
}

// DefaultTimeout bounds a single conversion
const DefaultTimeout = 2 * time.Minute

// Result describes one finished conversion
type Result struct {
	Input    string
	Output   string
	Duration time.Duration
}

// Runner converts single files
type Runner interface {
	Run(ctx context.Context, direction Direction, path string) (*Result, error)
}

// Config contains configuration options for the runner
type Config struct {
	// ToJSONPath is the PB8ToJson executable
	ToJSONPath string
	// ToNativePath is the JsonToPB8 executable
	ToNativePath string
	// Timeout per conversion (optional, defaults to DefaultTimeout)
	Timeout time.Duration
	// Clock measures durations (optional)
	Clock clock.Clock
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	vb := errors.NewValidationBuilder()
	if cfg.ToJSONPath == "" && cfg.ToNativePath == "" {
		vb.Field("ToJSONPath", "at least one converter executable is required")
	}
	if cfg.Timeout < 0 {
		vb.InvalidField("Timeout", "must be positive")
	}
	return vb.Build()
}

type runner struct {
	executables map[Direction]string
	timeout     time.Duration
	clock       clock.Clock
}

// New creates an exec based runner
func New(cfg *Config) (Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &runner{
		executables: map[Direction]string{
			ToJSON:   cfg.ToJSONPath,
			ToNative: cfg.ToNativePath,
		},
		timeout: cfg.Timeout,
		clock:   cfg.Clock,
	}, nil
}

func (r *runner) Run(ctx context.Context, direction Direction, path string) (*Result, error) {
	exe := r.executables[direction]
	if exe == "" {
		return nil, errors.FailedPreconditionf("no %s converter configured", direction)
	}
	if _, err := exec.LookPath(exe); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "converter executable not found").
			WithMeta("executable", exe)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NotFoundf("input %s not found", path)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, path) // #nosec G204
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := r.clock.Now()
	err := cmd.Run()
	elapsed := r.clock.Now().Sub(start)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, errors.DeadlineExceededf("converter timed out after %s", r.timeout).
			WithMeta("input", path)
	case ctx.Err() != nil:
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "conversion canceled")
	case err != nil:
		return nil, errors.WrapWithCodef(err, errors.CodeAborted, "%s failed", filepath.Base(exe)).
			WithMeta("input", path).
			WithMeta("stderr", strings.TrimSpace(stderr.String()))
	}

	slog.DebugContext(ctx, "Converted file", "input", path, "direction", direction.String(), "duration", elapsed)
	return &Result{
		Input:    path,
		Output:   strings.TrimSpace(stdout.String()),
		Duration: elapsed,
	}, nil
}
