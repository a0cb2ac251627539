package sink

import (
	"encoding/json"

	"github.com/matzehuels/thumbkit/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON serializes the scene tree. The output can be read back with
// [scene.Unmarshal].
func RenderJSON(root *scene.Node, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.compact {
		return json.Marshal(root)
	}
	return scene.Marshal(root)
}
