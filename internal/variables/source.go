package variables

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// Source supplies the value of one declared variable. set is false when
// the variable deliberately has no value.
type Source interface {
	Value(v manifest.Variable) (value string, set bool, err error)
}

// Defaults fills every variable from its declared default, or "" when
// there is none.
type Defaults struct{}

// Value implements Source.
func (Defaults) Value(v manifest.Variable) (string, bool, error) {
	return v.DefaultValue(), true, nil
}

// Interactive asks for each variable on W and reads one line from R.
// An empty answer keeps the declared default; with no default the
// variable is recorded as unset.
type Interactive struct {
	r *bufio.Reader
	w io.Writer
}

// NewInteractive returns a Source prompting on w and reading from r.
func NewInteractive(r io.Reader, w io.Writer) *Interactive {
	return &Interactive{r: bufio.NewReader(r), w: w}
}

// Value implements Source.
func (s *Interactive) Value(v manifest.Variable) (string, bool, error) {
	fmt.Fprintf(s.w, "%s (default: %s): ", v.Prompt, v.DefaultValue())

	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, apperr.Wrap(apperr.ErrIO, err, "reading value for %q", v.Key)
	}
	if errors.Is(err, io.EOF) {
		// Keep following prompts on their own lines when input ends early.
		fmt.Fprintln(s.w)
	}

	value := strings.TrimSpace(line)
	if value != "" {
		return value, true, nil
	}
	if v.Default == nil {
		return "", false, nil
	}
	return *v.Default, true, nil
}

// File reads values from a YAML mapping of variable key to value.
// Variables missing from the file fall back to their defaults.
type File struct {
	Path   string
	values map[string]string
}

// LoadFile parses a values file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.IO("reading values file", path, err)
	}
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperr.Wrap(apperr.ErrIO, err, "parsing values file %s", path)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			values[k] = ""
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return &File{Path: path, values: values}, nil
}

// Value implements Source.
func (f *File) Value(v manifest.Variable) (string, bool, error) {
	if value, ok := f.values[v.Key]; ok {
		return value, true, nil
	}
	return Defaults{}.Value(v)
}

// Options selects a Source.
type Options struct {
	UseDefaults bool
	ValuesFile  string
	Stdin       io.Reader
	Stdout      io.Writer
}

// NewSource picks the Source for opts. A values file takes precedence;
// otherwise UseDefaults selects Defaults over Interactive.
func NewSource(opts Options) (Source, error) {
	switch {
	case opts.ValuesFile != "":
		return LoadFile(opts.ValuesFile)
	case opts.UseDefaults:
		return Defaults{}, nil
	default:
		in, out := opts.Stdin, opts.Stdout
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		return NewInteractive(in, out), nil
	}
}
