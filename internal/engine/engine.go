package engine

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/cproject-labs/cproject/internal/apperr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywords cannot be used as function names in text/template actions.
// Variables with these keys are still reachable as {{.key}}.
var keywords = map[string]bool{
	"block": true, "break": true, "continue": true, "define": true,
	"else": true, "end": true, "if": true, "range": true, "nil": true,
	"template": true, "with": true, "true": true, "false": true,
}

// builtins are the functions text/template predefines. A variable with one
// of these keys must not replace the builtin; it stays reachable as {{.key}}.
var builtins = map[string]bool{
	"and": true, "call": true, "html": true, "index": true, "slice": true,
	"js": true, "len": true, "not": true, "or": true, "print": true,
	"printf": true, "println": true, "urlquery": true,
	"eq": true, "ge": true, "gt": true, "le": true, "lt": true, "ne": true,
}

var titleCaser = cases.Title(language.English)

// Engine renders templates against one Context. Each variable is exposed
// both as a function, so {{name}} works, and as a map entry, so {{.name}}
// works. Referencing an undefined variable is an error in either form.
type Engine struct {
	data  map[string]string
	funcs template.FuncMap
}

// New binds an engine to ctx. Later changes to ctx are not observed.
func New(ctx *Context) *Engine {
	e := &Engine{
		data:  ctx.Map(),
		funcs: helpers(ctx),
	}
	for key, value := range e.data {
		// Helper and builtin names win; such variables stay reachable as {{.key}}.
		if _, helper := e.funcs[key]; helper || builtins[key] || !isFuncName(key) {
			continue
		}
		v := value
		e.funcs[key] = func() string { return v }
	}
	return e
}

// Render renders text. name identifies the template in error messages.
func (e *Engine) Render(name, text string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(e.funcs).
		Parse(text)
	if err != nil {
		return "", apperr.Render(name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, e.data); err != nil {
		return "", apperr.Render(name, err)
	}
	return b.String(), nil
}

func helpers(ctx *Context) template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCaser.String,
		"snake": func(s string) string { return joinWords(s, "_") },
		"kebab": func(s string) string { return joinWords(s, "-") },
		"isset": func(key string) bool {
			_, ok := ctx.Get(key)
			return ok
		},
	}
}

// joinWords lowercases s and joins its words with sep. Word boundaries are
// spaces, '-', '_', '.', and lower-to-upper case transitions.
func joinWords(s, sep string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return strings.Join(words, sep)
}

// isFuncName reports whether key is usable as a template function name.
func isFuncName(key string) bool {
	if key == "" || keywords[key] {
		return false
	}
	for i, r := range key {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
