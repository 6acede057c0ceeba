package dbadmin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command is one external invocation. Env entries are appended to the
// parent environment.
type Command struct {
	Name  string
	Args  []string
	Env   []string
	Stdin io.Reader
}

// Runner executes external database tooling. Tests swap in a fake; the
// real one shells out.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

type execRunner struct{}

func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", cmd.Name, err, firstLine(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
