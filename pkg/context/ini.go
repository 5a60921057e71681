package context

import (
	"github.com/arthur-debert/j2go/pkg/errors"
	"gopkg.in/ini.v1"
)

// parseINI parses the input as INI with [section] headers, producing a
// two-level mapping: section name -> key/value pairs (values stay strings).
// Keys declared before any section header surface under the reserved
// DEFAULT section name.
func parseINI(data []byte) (map[string]interface{}, error) {
	if isEmptyInput(data) {
		return map[string]interface{}{}, nil
	}

	f, err := ini.Load(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "failed to parse ini data")
	}

	out := make(map[string]interface{})
	for _, section := range f.Sections() {
		keys := section.Keys()
		// ini always materializes the default section; only surface it
		// when it actually holds keys
		if section.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}

		values := make(map[string]interface{}, len(keys))
		for _, key := range keys {
			values[key.Name()] = key.Value()
		}
		out[section.Name()] = values
	}
	return out, nil
}
