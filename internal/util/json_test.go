package util

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNDJSONEncoder(t *testing.T) {
	for _, name := range []string{"docs.ndjson", "docs.ndjson.gz"} {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(t.TempDir(), name)
			enc, err := NewNDJSONEncoder(fn)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, enc.Encode(map[string]any{"i": i, "html": "<b>"}))
				}(i)
			}
			wg.Wait()
			assert.Equal(t, 10, enc.Count())
			require.NoError(t, enc.Close())
			require.NoError(t, enc.Close())

			buf, err := ReadFile(fn)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
			require.Len(t, lines, 10)
			seen := map[float64]bool{}
			for _, line := range lines {
				assert.Contains(t, line, `"<b>"`)
				var v map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &v))
				seen[v["i"].(float64)] = true
			}
			assert.Len(t, seen, 10)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
