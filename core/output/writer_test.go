package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "-", want: "stdin"},
		{src: "", want: "stdin"},
		{src: "testdata/my mutation.xml", want: "my_mutation"},
		{src: "/tmp/proc-def.xml", want: "proc-def"},
		{src: "https://example.com/project/mutation.xml", want: "example_com_project_mutation"},
		{src: "https://example.com/", want: "example_com"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.src))
		})
	}
}

func TestWriter_Stream(t *testing.T) {
	var buf bytes.Buffer
	w, err := New("", &buf)
	require.NoError(t, err)

	path, err := w.Write("m.xml", []byte("{}\n"), ".json")
	require.NoError(t, err)
	assert.Equal(t, StdoutPath, path)
	assert.Equal(t, "{}\n", buf.String())
}

func TestWriter_Dir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w, err := New(dir, nil)
	require.NoError(t, err)

	path, err := w.Write("in/m.xml", []byte("data"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "m.yaml"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
