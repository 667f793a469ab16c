package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS map[string]string

func (m MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestTOMLLoader(t *testing.T) {
	memfs := MemFS{"/gapedit.toml": `
[editor]
tabWidth = 8
lineEnding = "crlf"

[buffer]
pooled = true
`}

	config, err := NewTOMLLoaderWithFS(memfs, "/gapedit.toml").Load()
	require.NoError(t, err)

	editor, ok := config["editor"].(map[string]any)
	require.True(t, ok, "editor section should be a map")
	assert.Equal(t, int64(8), editor["tabWidth"])
	assert.Equal(t, "crlf", editor["lineEnding"])
	assert.Equal(t, true, config["buffer"].(map[string]any)["pooled"])
}

func TestTOMLLoaderParseError(t *testing.T) {
	memfs := MemFS{"/bad.toml": "[editor]\ntabWidth = = 3\n"}

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
	assert.Equal(t, "/bad.toml", pe.Path)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Error(), "line 2")
}

func TestYAMLLoader(t *testing.T) {
	memfs := MemFS{"/gapedit.yaml": `
editor:
  tabWidth: 2
  normalize: nfc
script:
  timeout: 3s
`}

	config, err := NewYAMLLoaderWithFS(memfs, "/gapedit.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 2, config["editor"].(map[string]any)["tabWidth"])
	assert.Equal(t, "3s", config["script"].(map[string]any)["timeout"])

	_, err = NewYAMLLoaderWithFS(MemFS{"/x.yaml": "editor: [1, 2"}, "/x.yaml").Load()
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestLoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[bench]\nseed = 7\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), config["bench"].(map[string]any)["seed"])

	config, err = NewYAMLLoader("").LoadFromReader(strings.NewReader("bench:\n  seed: 9\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, config["bench"].(map[string]any)["seed"])
}

func TestMissingFileIsNotAnError(t *testing.T) {
	for _, path := range []string{"/none.toml", "/none.yaml"} {
		l, err := ForPath(MemFS{}, path)
		require.NoError(t, err)
		config, err := l.Load()
		assert.NoError(t, err)
		assert.Nil(t, config)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    any
		wantErr bool
	}{
		{"a.toml", &TOMLLoader{}, false},
		{"a.TOML", &TOMLLoader{}, false},
		{"a.yml", &YAMLLoader{}, false},
		{"a.yaml", &YAMLLoader{}, false},
		{"a.json", nil, true},
	}
	for _, tt := range tests {
		l, err := ForPath(MemFS{}, tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.IsType(t, tt.want, l, tt.path)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabWidth": 4, "maxUndo": 100},
		"bench":  map[string]any{"seed": 1},
	}
	src := map[string]any{
		"editor": map[string]any{"tabWidth": 8},
		"bench":  "replaced",
		"script": map[string]any{"timeout": "1s"},
	}

	got := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{
		"editor": map[string]any{"tabWidth": 8, "maxUndo": 100},
		"bench":  "replaced",
		"script": map[string]any{"timeout": "1s"},
	}, got)

	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(nil, map[string]any{"a": 1}))
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("GAPEDIT_")
	l.environ = func() []string {
		return []string{
			"GAPEDIT_TAB_WIDTH=2",
			"GAPEDIT_POOLED=yes",
			"GAPEDIT_SCRIPT_INSTRUCTION_LIMIT=5000",
			"GAPEDIT_BENCH_LOCALITY=0.75",
			"GAPEDIT_EDITOR_NORMALIZE=nfc",
			"GAPEDIT_BOGUS=1",
			"OTHER_TAB_WIDTH=9",
		}
	}
	l.AddMapping("GAPEDIT_UNDO", "editor.maxUndo")

	config, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"editor": map[string]any{"tabWidth": int64(2), "normalize": "nfc"},
		"buffer": map[string]any{"pooled": true},
		"script": map[string]any{"instructionLimit": int64(5000)},
		"bench":  map[string]any{"locality": 0.75},
	}, config)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"off", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"0.5", 0.5},
		{"2s", "2s"},
		{"[1,2]", []any{float64(1), float64(2)}},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.in), tt.in)
	}
}
