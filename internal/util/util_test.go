package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONStringify(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":"c"}`, JSONStringify(map[string]any{"b": "c", "a": 1}))
	assert.Equal(t, "null", JSONStringify(nil))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "file.txt")
	assert.True(t, Exists(dir))
	assert.False(t, Exists(fn))
	assert.NoError(t, os.WriteFile(fn, []byte("x"), 0644))
	assert.True(t, Exists(fn))
}

func TestSliceContains(t *testing.T) {
	assert.True(t, SliceContains([]string{"a", "b"}, "b"))
	assert.False(t, SliceContains([]string{"a", "b"}, "c"))
	assert.False(t, SliceContains(nil, "a"))
}

func TestCompact(t *testing.T) {
	a, b := 1, 2
	assert.Equal(t, []*int{&a, &b}, Compact([]*int{nil, &a, nil, &b}))
	assert.Empty(t, Compact([]*int{nil}))
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []string{"c", "a"}, Intersect([]string{"c", "b", "a"}, []string{"a", "c"}))
	assert.Empty(t, Intersect([]string{"a"}, nil))
}
