package nlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shahar-caura/textuml/internal/diagram"
)

// CommandContext is the function used to create exec.Cmd. Override in tests.
var CommandContext = exec.CommandContext

// LookPath is the function used to find executables. Override in tests.
var LookPath = exec.LookPath

// CommandAnnotator runs a local parser per call. The text is written to the
// command's stdin and a Document is read from its stdout.
type CommandAnnotator struct {
	path    string
	args    []string
	timeout time.Duration
}

// NewCommandAnnotator resolves name on PATH.
func NewCommandAnnotator(name string, args []string, timeout time.Duration) (*CommandAnnotator, error) {
	path, err := LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, name)
	}
	return &CommandAnnotator{path: path, args: args, timeout: timeout}, nil
}

// Annotate implements diagram.Annotator.
func (a *CommandAnnotator) Annotate(ctx context.Context, text string) ([]diagram.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := CommandContext(ctx, a.path, a.args...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: timed out after %s", ErrAnnotationFailed, a.timeout)
		}
		return nil, fmt.Errorf("%w: %s", ErrAnnotationFailed, strings.TrimSpace(stderr.String()))
	}

	return decodeDocument(stdout.Bytes())
}
