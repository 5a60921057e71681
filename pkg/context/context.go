package context

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/arthur-debert/j2go/pkg/logging"
)

// Format selects one of the supported input data formats
type Format string

const (
	FormatEnv  Format = "env"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatINI  Format = "ini"
)

// Formats lists all supported format identifiers in display order
func Formats() []Format {
	return []Format{FormatEnv, FormatJSON, FormatYAML, FormatINI}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "env":
		return FormatEnv, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	case "ini":
		return FormatINI, nil
	default:
		return "", errors.Newf(errors.ErrConfig, "unknown format %q (supported: env, json, yaml, ini)", s)
	}
}

// DetectFormat infers the input format from the data source's file
// extension. An absent data source means the ambient environment is the
// source, so env is returned.
func DetectFormat(dataSource string) (Format, error) {
	if dataSource == "" {
		return FormatEnv, nil
	}
	switch filepath.Ext(dataSource) {
	case ".ini":
		return FormatINI, nil
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".env":
		return FormatEnv, nil
	default:
		return "", errors.Newf(errors.ErrConfig, "cannot detect data format from %q, use --format", dataSource)
	}
}

// BuildOptions defines the inputs for the Build operation.
type BuildOptions struct {
	// Format selects the parser for the data source.
	Format Format
	// Data is the raw data source content. Ignored unless HasData is set.
	Data []byte
	// HasData reports whether an explicit data source was supplied.
	// Without one, only the env format is legal and the result is the
	// Environ mapping itself.
	HasData bool
	// Environ is the ambient environment variable mapping, threaded in
	// explicitly so the builder stays free of global state.
	Environ map[string]string
	// ImportEnv, when non-empty, nests the parsed result under this
	// single top-level key.
	ImportEnv string
}

// Build normalizes one data source into the canonical context mapping.
func Build(opts BuildOptions) (map[string]interface{}, error) {
	log := logging.GetLogger("context")

	var parsed map[string]interface{}
	var err error

	switch opts.Format {
	case FormatEnv:
		if opts.HasData {
			parsed = parseEnvLines(opts.Data)
		} else {
			parsed = fromEnviron(opts.Environ)
		}
	case FormatJSON, FormatYAML, FormatINI:
		if !opts.HasData {
			return nil, errors.Newf(errors.ErrConfig, "format %q requires a data source", opts.Format)
		}
		switch opts.Format {
		case FormatJSON:
			parsed, err = parseJSON(opts.Data)
		case FormatYAML:
			parsed, err = parseYAML(opts.Data)
		case FormatINI:
			parsed, err = parseINI(opts.Data)
		}
	default:
		return nil, errors.Newf(errors.ErrConfig, "unknown format %q", opts.Format)
	}

	if err != nil {
		return nil, err
	}

	if opts.ImportEnv != "" {
		parsed = map[string]interface{}{opts.ImportEnv: parsed}
	}

	log.Debug().
		Str("format", string(opts.Format)).
		Bool("hasData", opts.HasData).
		Int("keys", len(parsed)).
		Msg("Context built")

	return parsed, nil
}

// Environ converts an os.Environ-style KEY=VALUE slice into a mapping.
// Entries without '=' are skipped; later entries win for duplicate keys.
func Environ(entries []string) map[string]string {
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func fromEnviron(environ map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(environ))
	for k, v := range environ {
		out[k] = v
	}
	return out
}

// isEmptyInput reports whether the data source holds no content. Every
// parser yields an empty mapping for empty input instead of failing.
func isEmptyInput(data []byte) bool {
	return len(strings.TrimSpace(string(data))) == 0
}
