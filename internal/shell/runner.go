package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Output is what a finished command wrote, trimmed of surrounding whitespace.
type Output struct {
	Stdout string
	Stderr string
}

// Runner runs external programs. Implementations must honour ctx.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Output, error)
	LookPath(name string) (string, error)
}

// ExitError is returned when a command ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		code := -1
		if cmd.ProcessState != nil {
			code = cmd.ProcessState.ExitCode()
		}
		return out, &ExitError{
			Command: CommandLine(name, args...),
			Code:    code,
			Stderr:  out.Stderr,
			Err:     err,
		}
	}
	return out, nil
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandLine renders name and args for logs and error context. Arguments
// longer than 60 characters (PR bodies) are elided.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if len([]rune(a)) > 60 {
			a = string([]rune(a)[:57]) + "..."
		}
		if strings.ContainsAny(a, " \t\n") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
