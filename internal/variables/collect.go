package variables

import (
	"time"

	"github.com/cproject-labs/cproject/internal/engine"
	"github.com/cproject-labs/cproject/internal/manifest"
)

// Collector builds rendering contexts. Now defaults to time.Now.
type Collector struct {
	Now func() time.Time
}

// Collect seeds the context with name and year, then asks src for every
// declared variable except the reserved keys, in declaration order.
func (c Collector) Collect(m *manifest.Manifest, projectName string, src Source) (*engine.Context, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	ctx := engine.NewContext()
	ctx.Set(engine.KeyName, projectName)
	ctx.Set(engine.KeyYear, now().UTC().Format("2006"))

	for _, v := range m.Variables {
		if engine.IsReserved(v.Key) {
			continue
		}
		value, set, err := src.Value(v)
		if err != nil {
			return nil, err
		}
		if set {
			ctx.Set(v.Key, value)
		} else {
			ctx.SetUnset(v.Key)
		}
	}
	return ctx, nil
}

// Collect is Collector{}.Collect.
func Collect(m *manifest.Manifest, projectName string, src Source) (*engine.Context, error) {
	return Collector{}.Collect(m, projectName, src)
}
