package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDirWritable(t *testing.T) {
	dir := t.TempDir()
	ok, err := IsDirWritable(dir)
	assert.NoError(t, err)
	assert.True(t, ok)

	fn := filepath.Join(dir, "file.txt")
	assert.NoError(t, os.WriteFile(fn, []byte("x"), 0644))
	ok, err = IsDirWritable(fn)
	assert.Error(t, err)
	assert.False(t, ok)

	ok, err = IsDirWritable(filepath.Join(dir, "missing"))
	assert.Error(t, err)
	assert.False(t, ok)
}
