package context

import (
	"encoding/json"

	"github.com/arthur-debert/j2go/pkg/errors"
)

// parseJSON parses the input as a single JSON document whose top-level
// value must be an object.
func parseJSON(data []byte) (map[string]interface{}, error) {
	if isEmptyInput(data) {
		return map[string]interface{}{}, nil
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "failed to parse json data")
	}

	mapping, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrParse, "json data must have an object at the top level, got %T", value)
	}
	return mapping, nil
}
