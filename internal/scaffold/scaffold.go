package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/engine"
	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// TemplateSuffix marks a file to be rendered and written without the suffix.
const TemplateSuffix = ".tmpl"

// Result holds the outcome of a render.
type Result struct {
	OutputDir string
	Files     []string // destination paths relative to OutputDir, in walk order
	Binary    []string // subset of Files copied without rendering
}

// Renderer writes a rendered template tree to Fs.
type Renderer struct {
	Fs     afero.Fs
	Engine *engine.Engine
	Log    logrus.FieldLogger
}

// Render walks templateRoot depth-first and mirrors it under destination.
// The top-level manifest file is skipped. Output already written stays on
// disk when an error is returned.
func (r *Renderer) Render(templateRoot, destination string) (*Result, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	result := &Result{OutputDir: destination}

	err := afero.Walk(r.Fs, templateRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return apperr.IO("reading", path, err)
		}
		rel, err := filepath.Rel(templateRoot, path)
		if err != nil {
			return apperr.IO("resolving", path, err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !info.IsDir() && manifest.IsManifestFile(rel) {
			return nil
		}

		renderedRel, err := r.Engine.Render(rel, rel)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, filepath.FromSlash(renderedRel))

		if info.IsDir() {
			log.WithField("path", renderedRel).Debug("creating directory")
			if err := r.Fs.MkdirAll(target, 0o755); err != nil {
				return apperr.IO("creating directory", target, err)
			}
			return nil
		}

		data, err := afero.ReadFile(r.Fs, path)
		if err != nil {
			return apperr.IO("reading", path, err)
		}

		if !utf8.Valid(data) {
			// Binary files keep their source name under the rendered parent.
			target = filepath.Join(filepath.Dir(target), info.Name())
			log.WithField("path", rel).Debug("copying binary file")
			if err := r.write(target, data, info.Mode()); err != nil {
				return err
			}
			out := relTo(destination, target)
			result.Files = append(result.Files, out)
			result.Binary = append(result.Binary, out)
			return nil
		}

		body, err := r.Engine.Render(rel, string(data))
		if err != nil {
			return err
		}
		if strings.HasSuffix(info.Name(), TemplateSuffix) {
			target = strings.TrimSuffix(target, TemplateSuffix)
		}
		log.WithField("path", renderedRel).Debug("rendering file")
		if err := r.write(target, []byte(body), info.Mode()); err != nil {
			return err
		}
		result.Files = append(result.Files, relTo(destination, target))
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

func (r *Renderer) write(target string, data []byte, mode os.FileMode) error {
	if err := r.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return apperr.IO("creating directory", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(r.Fs, target, data, mode.Perm()); err != nil {
		return apperr.IO("writing", target, err)
	}
	// WriteFile only applies mode on create and is subject to umask.
	if err := r.Fs.Chmod(target, mode.Perm()); err != nil {
		return apperr.IO("chmod", target, err)
	}
	return nil
}

func relTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
