package bind

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// FromStruct flattens a struct, nested structs included, into the plain map
// form CreateReactiveSystem observes. Field names follow mapstructure tags.
func FromStruct(v any) (map[string]any, error) {
	out := map[string]any{}
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, fmt.Errorf("bind: decode %T: %w", v, err)
	}
	return out, nil
}
