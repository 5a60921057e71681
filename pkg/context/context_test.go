package context

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"env", "json", "yaml", "ini"} {
		got, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), got)
	}

	_, err := ParseFormat("toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		source   string
		expected Format
	}{
		{"", FormatEnv},
		{"config.env", FormatEnv},
		{"data.json", FormatJSON},
		{"data.yml", FormatYAML},
		{"data.yaml", FormatYAML},
		{"settings.ini", FormatINI},
		{"/abs/path/to/nginx.json", FormatJSON},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.source)
		require.NoError(t, err, "source %q", tt.source)
		assert.Equal(t, tt.expected, got, "source %q", tt.source)
	}

	_, err := DetectFormat("data.txt")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestBuildEnvFromEnviron(t *testing.T) {
	environ := map[string]string{
		"NGINX_HOSTNAME": "localhost",
		"NGINX_WEBROOT":  "/var/www/project",
	}

	ctx, err := Build(BuildOptions{Format: FormatEnv, Environ: environ})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"NGINX_HOSTNAME": "localhost",
		"NGINX_WEBROOT":  "/var/www/project",
	}, ctx)
}

func TestBuildEnvFromData(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected map[string]interface{}
	}{
		{
			name: "simple pairs",
			data: "A=1\nB=2\n",
			expected: map[string]interface{}{
				"A": "1",
				"B": "2",
			},
		},
		{
			name: "last duplicate wins",
			data: "KEY=first\nKEY=second\n",
			expected: map[string]interface{}{
				"KEY": "second",
			},
		},
		{
			name: "blank lines and lines without '=' are skipped",
			data: "\nnot a pair\nA=1\n\n",
			expected: map[string]interface{}{
				"A": "1",
			},
		},
		{
			name: "whitespace around the key is trimmed",
			data: "  SPACED  = value \n",
			expected: map[string]interface{}{
				"SPACED": "value",
			},
		},
		{
			name: "value keeps '=' after the first",
			data: "URL=postgres://u:p@host/db?sslmode=disable\n",
			expected: map[string]interface{}{
				"URL": "postgres://u:p@host/db?sslmode=disable",
			},
		},
		{
			name:     "empty source yields empty mapping",
			data:     "",
			expected: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := Build(BuildOptions{
				Format:  FormatEnv,
				Data:    []byte(tt.data),
				HasData: true,
				Environ: map[string]string{"AMBIENT": "ignored"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ctx)
		})
	}
}

func TestBuildJSON(t *testing.T) {
	ctx, err := Build(BuildOptions{
		Format:  FormatJSON,
		Data:    []byte(`{"nginx": {"hostname": "localhost", "workers": 4}}`),
		HasData: true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"nginx": map[string]interface{}{
			"hostname": "localhost",
			"workers":  float64(4),
		},
	}, ctx)
}

func TestBuildJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"nginx": `},
		{"top-level array", `[1, 2, 3]`},
		{"top-level scalar", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(BuildOptions{Format: FormatJSON, Data: []byte(tt.data), HasData: true})
			assert.True(t, errors.IsErrorCode(err, errors.ErrParse), "got: %v", err)
		})
	}
}

func TestBuildJSONEmptyInput(t *testing.T) {
	ctx, err := Build(BuildOptions{Format: FormatJSON, Data: []byte("  \n"), HasData: true})
	require.NoError(t, err)
	assert.Empty(t, ctx)
}

func TestBuildYAML(t *testing.T) {
	data := "nginx:\n  hostname: localhost\n  modules:\n    - gzip\n    - ssl\n"
	ctx, err := Build(BuildOptions{Format: FormatYAML, Data: []byte(data), HasData: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"nginx": map[string]interface{}{
			"hostname": "localhost",
			"modules":  []interface{}{"gzip", "ssl"},
		},
	}, ctx)
}

func TestBuildYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "nginx: [unclosed"},
		{"top-level sequence", "- a\n- b\n"},
		{"top-level scalar", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(BuildOptions{Format: FormatYAML, Data: []byte(tt.data), HasData: true})
			assert.True(t, errors.IsErrorCode(err, errors.ErrParse), "got: %v", err)
		})
	}
}

func TestBuildINI(t *testing.T) {
	ctx, err := Build(BuildOptions{
		Format:  FormatINI,
		Data:    []byte("[a]\nx=1\n[b]\ny=2\n"),
		HasData: true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"a": map[string]interface{}{"x": "1"},
		"b": map[string]interface{}{"y": "2"},
	}, ctx)
}

func TestBuildINIDefaultSection(t *testing.T) {
	ctx, err := Build(BuildOptions{
		Format:  FormatINI,
		Data:    []byte("loose=value\n[named]\nk=v\n"),
		HasData: true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"DEFAULT": map[string]interface{}{"loose": "value"},
		"named":   map[string]interface{}{"k": "v"},
	}, ctx)
}

func TestBuildINIMalformed(t *testing.T) {
	_, err := Build(BuildOptions{
		Format:  FormatINI,
		Data:    []byte("[section]\nthis line has no delimiter\n"),
		HasData: true,
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse), "got: %v", err)
}

func TestBuildRequiresDataForFileFormats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatINI} {
		_, err := Build(BuildOptions{Format: format, Environ: map[string]string{"A": "1"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfig), "format %s", format)
	}
}

func TestBuildUnknownFormat(t *testing.T) {
	_, err := Build(BuildOptions{Format: Format("toml"), Data: []byte("a=1"), HasData: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestBuildImportEnv(t *testing.T) {
	ctx, err := Build(BuildOptions{
		Format:    FormatEnv,
		Environ:   map[string]string{"HOME": "/root"},
		ImportEnv: "env",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"env": map[string]interface{}{"HOME": "/root"},
	}, ctx)
}

// Building from a serialized mapping must reproduce its structural
// translation exactly.
func TestBuildRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"service": map[string]interface{}{
			"name":  "api",
			"hosts": []interface{}{"a.example.com", "b.example.com"},
		},
		"debug": "true",
	}

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(original)
		require.NoError(t, err)

		ctx, err := Build(BuildOptions{Format: FormatYAML, Data: data, HasData: true})
		require.NoError(t, err)
		assert.Equal(t, original, ctx)
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(original)
		require.NoError(t, err)

		ctx, err := Build(BuildOptions{Format: FormatJSON, Data: data, HasData: true})
		require.NoError(t, err)
		assert.Equal(t, original, ctx)
	})
}

func TestEnviron(t *testing.T) {
	got := Environ([]string{"A=1", "B=x=y", "MALFORMED", "A=2"})
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y"}, got)
}
