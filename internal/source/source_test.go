package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Location(t *testing.T) {
	f := New("prog.putt", "1 2+\n\"héllo\" \"x\n3 4*")
	for _, tc := range []struct {
		offset int
		want   string
	}{
		{0, "prog.putt:1:1"},
		{3, "prog.putt:1:4"},
		{5, "prog.putt:2:1"},
		{14, "prog.putt:2:9"},
		{-4, "prog.putt:1:1"},
		{1000, "prog.putt:3:5"},
	} {
		assert.Equal(t, tc.want, f.Location(tc.offset).String(), "offset %v", tc.offset)
	}
}

func TestFile_Line(t *testing.T) {
	f := New("x", "one\ntwo\nthree")
	assert.Equal(t, "one", f.Line(1))
	assert.Equal(t, "two", f.Line(2))
	assert.Equal(t, "three", f.Line(3))
	assert.Equal(t, "", f.Line(0))
	assert.Equal(t, "", f.Line(4))
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "six.putt")
	require.NoError(t, os.WriteFile(path, []byte("6!\n"), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name)
	assert.Equal(t, "6!\n", f.Text)

	_, err = Open(filepath.Join(t.TempDir(), "missing.putt"))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader("X 1+"))
	require.NoError(t, err)
	assert.Equal(t, "<unnamed *strings.Reader>", f.Name)
	assert.Equal(t, "X 1+", f.Text)
}
