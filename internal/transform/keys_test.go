package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomKeys(t *testing.T) {
	keys := RandomKeys("ignored")
	a, b := keys.Key(), keys.Key()
	assert.Len(t, a, keyLength)
	assert.NotEqual(t, a, b)
}

func TestStableKeys(t *testing.T) {
	first := StableKeys("entry/en-US")
	second := StableKeys("entry/en-US")
	other := StableKeys("entry/fr")

	a1, a2 := first.Key(), first.Key()
	assert.Len(t, a1, keyLength)
	assert.NotEqual(t, a1, a2)
	assert.Equal(t, a1, second.Key())
	assert.Equal(t, a2, second.Key())
	assert.NotEqual(t, a1, other.Key())
}
