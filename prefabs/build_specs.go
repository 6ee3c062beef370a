package prefabs

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeSpec converts a loosely typed value, such as a script result, into a
// spec type by round-tripping it through YAML.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, errors.Wrap(err, "prefabs: marshal raw spec")
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, errors.Wrap(err, "prefabs: decode raw spec")
	}
	return out, nil
}
