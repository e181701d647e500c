// Package plugin defines the host build-tool plugin contract for module transforms
// and an ordered pipeline that dispatches module requests across plugins.
package plugin

import (
	"encoding/json"
)

// Plugin transforms module requests for a host build tool.
type Plugin interface {
	// Name is the registration name reported to the host and in errors.
	Name() string

	// Transform inspects a module request. code is the host's current source
	// for the module and may be nil when the host has not loaded it. A plugin
	// that does not handle id returns NoTransform and a nil error.
	Transform(code []byte, id string) (Result, error)
}

// Result is either NoTransform or *Transformed.
type Result interface {
	isResult()
}

type noTransform struct{}

func (noTransform) isResult() {}

// NoTransform defers the module to the next handler in the pipeline.
var NoTransform Result = noTransform{}

// SourceMap is a placeholder for a source map attached to synthesized code.
// Transforms in this module never produce one.
type SourceMap struct {
	Version  int      `json:"version"`
	Sources  []string `json:"sources"`
	Mappings string   `json:"mappings"`
}

// Transformed replaces a module's compiled output with Code.
type Transformed struct {
	Code string     `json:"code"`
	Map  *SourceMap `json:"map"`
}

func (*Transformed) isResult() {}

// IsTransformed reports whether r carries synthesized code.
func IsTransformed(r Result) (*Transformed, bool) {
	t, ok := r.(*Transformed)
	return t, ok && t != nil
}

// MarshalJSON renders the host wire shape {"code": ..., "map": null}.
func (t *Transformed) MarshalJSON() ([]byte, error) {
	type wire Transformed
	return json.Marshal((*wire)(t))
}
