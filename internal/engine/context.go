package engine

import "slices"

// Reserved context keys supplied by the CLI, never by an archetype.
const (
	KeyName = "name"
	KeyYear = "year"
)

// IsReserved reports whether key is supplied by the CLI itself.
func IsReserved(key string) bool {
	return key == KeyName || key == KeyYear
}

// Context is the variable set a project is rendered against. A key may be
// present but unset: the user accepted an empty answer and no default
// existed. Unset keys render as the empty string.
type Context struct {
	keys   []string
	values map[string]string
	unset  map[string]bool
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{
		values: make(map[string]string),
		unset:  make(map[string]bool),
	}
}

// Set assigns value to key.
func (c *Context) Set(key, value string) {
	c.track(key)
	c.values[key] = value
	delete(c.unset, key)
}

// SetUnset records key as present without a value.
func (c *Context) SetUnset(key string) {
	c.track(key)
	delete(c.values, key)
	c.unset[key] = true
}

func (c *Context) track(key string) {
	if !slices.Contains(c.keys, key) {
		c.keys = append(c.keys, key)
	}
}

// Get returns the value for key; ok is false for absent and unset keys.
func (c *Context) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present, set or not.
func (c *Context) Has(key string) bool {
	_, set := c.values[key]
	return set || c.unset[key]
}

// IsUnset reports whether key is present without a value.
func (c *Context) IsUnset(key string) bool {
	return c.unset[key]
}

// Keys returns the keys in insertion order.
func (c *Context) Keys() []string {
	return slices.Clone(c.keys)
}

// Map returns a copy of the context as plain strings.
func (c *Context) Map() map[string]string {
	m := make(map[string]string, len(c.keys))
	for _, k := range c.keys {
		m[k] = c.values[k]
	}
	return m
}
