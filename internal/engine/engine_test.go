package engine

import (
	"testing"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *Context {
	ctx := NewContext()
	ctx.Set(KeyName, "demo")
	ctx.Set(KeyYear, "2026")
	ctx.Set("license", "MIT")
	ctx.Set("cxx-standard", "20")
	ctx.SetUnset("author")
	return ctx
}

func TestRender(t *testing.T) {
	e := New(newTestContext())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "no placeholders here", "no placeholders here"},
		{"bare variable", "# {{name}}", "# demo"},
		{"dotted variable", "# {{.name}} ({{.year}})", "# demo (2026)"},
		{"path", "src/{{name}}/{{name}}.cpp", "src/demo/demo.cpp"},
		{"index form", `{{index . "cxx-standard"}}`, "20"},
		{"unset renders empty", "by [{{author}}]", "by []"},
		{"isset", "{{if isset \"license\"}}L{{end}}{{if isset \"author\"}}A{{end}}", "L"},
		{"helpers", "{{upper name}} {{title \"hello world\"}} {{snake \"MyProject Name\"}} {{kebab \"my_lib\"}}", "DEMO Hello World my_project_name my-lib"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.name, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUndefinedVariable(t *testing.T) {
	e := New(newTestContext())

	_, err := e.Render("bare.txt", "{{missing}}")
	require.ErrorIs(t, err, apperr.ErrRender)
	assert.Contains(t, err.Error(), "bare.txt")

	_, err = e.Render("dotted.txt", "{{.missing}}")
	require.ErrorIs(t, err, apperr.ErrRender)
}

func TestRenderMalformed(t *testing.T) {
	e := New(newTestContext())
	_, err := e.Render("broken.txt", "{{name")
	assert.ErrorIs(t, err, apperr.ErrRender)
}

func TestContextOrderAndUnset(t *testing.T) {
	ctx := newTestContext()
	assert.Equal(t, []string{"name", "year", "license", "cxx-standard", "author"}, ctx.Keys())

	assert.True(t, ctx.Has("author"))
	assert.True(t, ctx.IsUnset("author"))
	_, ok := ctx.Get("author")
	assert.False(t, ok)

	ctx.Set("author", "Ada")
	assert.False(t, ctx.IsUnset("author"))
	assert.Equal(t, "Ada", ctx.Map()["author"])
	assert.Len(t, ctx.Keys(), 5)
}

func TestIsFuncName(t *testing.T) {
	tests := map[string]bool{
		"name":         true,
		"_private":     true,
		"v2":           true,
		"2v":           false,
		"cxx-standard": false,
		"range":        false,
		"":             false,
	}
	for key, want := range tests {
		assert.Equal(t, want, isFuncName(key), key)
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("name"))
	assert.True(t, IsReserved("year"))
	assert.False(t, IsReserved("license"))
}

func TestRenderBuiltinNameVariable(t *testing.T) {
	ctx := NewContext()
	ctx.Set(KeyName, "demo")
	ctx.Set("index", "I")
	ctx.Set("len", "L")
	ctx.Set("cxx-standard", "20")
	e := New(ctx)

	got, err := e.Render("t", `{{index . "cxx-standard"}}/{{.index}} {{len name}}/{{.len}}`)
	require.NoError(t, err)
	assert.Equal(t, "20/I 4/L", got)
}

func TestRenderHelperNameVariable(t *testing.T) {
	ctx := NewContext()
	ctx.Set(KeyName, "demo")
	ctx.Set("title", "Demo App")
	e := New(ctx)

	got, err := e.Render("t", `{{.title}} / {{title name}}`)
	require.NoError(t, err)
	assert.Equal(t, "Demo App / Demo", got)
}
