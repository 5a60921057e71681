package context

import (
	"github.com/arthur-debert/j2go/pkg/errors"
	"gopkg.in/yaml.v3"
)

// parseYAML parses the input as a single YAML document whose top-level
// node must be a mapping.
func parseYAML(data []byte) (map[string]interface{}, error) {
	if isEmptyInput(data) {
		return map[string]interface{}{}, nil
	}

	var value interface{}
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "failed to parse yaml data")
	}

	// A document holding only comments or directives decodes to nil
	if value == nil {
		return map[string]interface{}{}, nil
	}

	mapping, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrParse, "yaml data must have a mapping at the top level, got %T", value)
	}
	return mapping, nil
}
