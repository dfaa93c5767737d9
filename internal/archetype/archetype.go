package archetype

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/branding"
	"github.com/cproject-labs/cproject/internal/engine"
	"github.com/cproject-labs/cproject/internal/hooks"
	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/cproject-labs/cproject/internal/registry"
	"github.com/cproject-labs/cproject/internal/scaffold"
	"github.com/cproject-labs/cproject/internal/variables"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Archetype is a located and parsed template, good for one instantiation.
type Archetype struct {
	Name      string
	Root      string // absolute template root
	Manifest  *manifest.Manifest
	Source    registry.Source
	Candidate string
}

// LoadOptions controls where archetypes are searched for.
type LoadOptions struct {
	Fs        afero.Fs          // defaults to the OS filesystem
	Locations []string          // configured search roots, before the built-in root
	Mappings  map[string]string // archetype name to relative template path
	Version   string            // running version, checked against requires
	Log       logrus.FieldLogger
}

// Load locates the archetype called name and parses its manifest.
func Load(name string, opts LoadOptions) (*Archetype, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	resolved, err := registry.Resolve(fsys, name, registry.Sources(opts.Locations), opts.Mappings)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"archetype": name,
		"root":      resolved.Dir,
		"source":    resolved.Source.Name,
	}).Debug("archetype located")

	m, err := manifest.Load(fsys, resolved.Dir)
	if err != nil {
		return nil, err
	}
	if err := m.CheckRequires(opts.Version); err != nil {
		return nil, err
	}

	return &Archetype{
		Name:      name,
		Root:      resolved.Dir,
		Manifest:  m,
		Source:    resolved.Source,
		Candidate: resolved.Candidate,
	}, nil
}

// Stage names a step of Instantiate, reported through Options.OnStage.
type Stage string

const (
	StageCollect Stage = "collect"
	StageRender  Stage = "render"
	StageHooks   Stage = "hooks"
)

// Options controls one instantiation.
type Options struct {
	Fs afero.Fs // defaults to the OS filesystem; hooks always run on the OS

	// Variable source. Source wins when set; otherwise ValuesFile, then
	// UseDefaults, then interactive prompting on Stdin/Stdout.
	Source      variables.Source
	UseDefaults bool
	ValuesFile  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is passed to hooks on top of the inherited environment.
	Env       map[string]string
	SkipHooks bool

	Now     func() time.Time
	OnStage func(Stage)
	Log     logrus.FieldLogger
}

// Instantiate creates projectName at destination. destination must not exist.
func (a *Archetype) Instantiate(ctx context.Context, projectName, destination string, opts Options) (*scaffold.Result, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	stage := func(s Stage) {
		if opts.OnStage != nil {
			opts.OnStage(s)
		}
	}

	dest, err := filepath.Abs(destination)
	if err != nil {
		return nil, apperr.IO("resolving", destination, err)
	}
	if _, err := fsys.Stat(dest); err == nil {
		return nil, apperr.New(apperr.ErrDestinationExists, "destination %s already exists", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.IO("checking", dest, err)
	}

	stage(StageCollect)
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	// Prompts and hooks share stdin; whatever the prompts read ahead is
	// handed on to the hooks.
	var prompted *bufio.Reader
	src := opts.Source
	if src == nil {
		vopts := variables.Options{
			UseDefaults: opts.UseDefaults,
			ValuesFile:  opts.ValuesFile,
			Stdin:       stdin,
			Stdout:      opts.Stdout,
		}
		if !opts.UseDefaults && opts.ValuesFile == "" {
			prompted = bufio.NewReader(stdin)
			vopts.Stdin = prompted
		}
		src, err = variables.NewSource(vopts)
		if err != nil {
			return nil, err
		}
	}
	vars, err := variables.Collector{Now: opts.Now}.Collect(a.Manifest, projectName, src)
	if err != nil {
		return nil, err
	}
	eng := engine.New(vars)

	stage(StageRender)
	if err := fsys.MkdirAll(dest, 0o755); err != nil {
		return nil, apperr.IO("creating", dest, err)
	}
	renderer := &scaffold.Renderer{Fs: fsys, Engine: eng, Log: log.WithField("archetype", a.Name)}
	result, err := renderer.Render(a.Root, dest)
	if err != nil {
		return result, err
	}

	if len(a.Manifest.Hooks) == 0 || opts.SkipHooks {
		return result, nil
	}
	stage(StageHooks)
	env := map[string]string{
		branding.EnvVar("PROJECT_NAME"): projectName,
		branding.EnvVar("PROJECT_DIR"):  dest,
	}
	for k, v := range opts.Env {
		env[k] = v
	}
	runner := &hooks.Runner{
		Dir:    dest,
		Engine: eng,
		Env:    env,
		Stdin:  unread(prompted, stdin),
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		Log:    log.WithField("archetype", a.Name),
	}
	if err := runner.Run(ctx, a.Manifest.Hooks); err != nil {
		return result, err
	}
	return result, nil
}

// unread returns stdin with any bytes still buffered in prompted put back
// in front. stdin itself is returned when nothing is buffered, so hooks
// keep a real file descriptor in the common case.
func unread(prompted *bufio.Reader, stdin io.Reader) io.Reader {
	if prompted == nil || prompted.Buffered() == 0 {
		return stdin
	}
	rest, _ := prompted.Peek(prompted.Buffered())
	return io.MultiReader(bytes.NewReader(append([]byte(nil), rest...)), stdin)
}
