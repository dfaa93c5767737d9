package hooks

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/engine"
	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

// Runner executes hook command templates.
type Runner struct {
	// Dir is the working directory of every hook.
	Dir    string
	Engine *engine.Engine

	// Env is added on top of the inherited process environment,
	// replacing inherited entries with the same key.
	Env map[string]string

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log logrus.FieldLogger
}

// Run renders, splits, and executes each hook in order. The first hook that
// fails to render, is empty, cannot start, or exits non-zero stops the run.
func (r *Runner) Run(ctx context.Context, hooks []string) error {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	env := r.environ()

	for i, hook := range hooks {
		line, err := r.Engine.Render("hook", hook)
		if err != nil {
			return err
		}
		args, err := Split(line)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{"hook": line, "index": i}).Debug("running hook")

		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = r.Dir
		cmd.Env = env
		cmd.Stdin = orReader(r.Stdin, os.Stdin)
		cmd.Stdout = orWriter(r.Stdout, os.Stdout)
		cmd.Stderr = orWriter(r.Stderr, os.Stderr)

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &apperr.HookError{Command: line, ExitStatus: exitErr.ExitCode(), Err: err}
			}
			return &apperr.HookError{Command: line, ExitStatus: -1, Err: err}
		}
	}
	return nil
}

// Split breaks a rendered hook line into program and arguments using
// POSIX shell-word rules. No expansion is performed.
func Split(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrHookEmpty, err, "splitting hook %q", line)
	}
	if len(args) == 0 {
		return nil, apperr.New(apperr.ErrHookEmpty, "hook %q has no command", line)
	}
	return args, nil
}

func (r *Runner) environ() []string {
	env := os.Environ()
	keys := make([]string, 0, len(r.Env))
	for k := range r.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, r.Env[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
