package cmd

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	cft "github.com/shopmonkeyus/contentful-to-sanity/internal/contentfultest"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/tracker"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/transform"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExport() *contentful.Export {
	post := cft.ContentType("post", []contentful.Field{cft.Field("title", contentful.Symbol)}, "title")
	export := cft.Export([]contentful.ContentType{post}, cft.EditorInterface("post", cft.Control("title", contentful.WidgetSingleLine, nil)))
	export.Locales = cft.Locales("en-US", "fr")
	export.Entries = []contentful.Entry{
		cft.Entry("a", "post", map[string]map[string]any{"title": {"en-US": "A"}}),
		cft.Entry("b", "post", map[string]map[string]any{"title": {"en-US": "B"}}),
	}
	export.Tags = []contentful.Tag{cft.Tag("news", "News")}
	return export
}

func countLines(t *testing.T, fn string) int {
	t.Helper()
	f, err := os.Open(fn)
	require.NoError(t, err)
	defer f.Close()
	var n int
	s := bufio.NewScanner(f)
	for s.Scan() {
		n++
	}
	require.NoError(t, s.Err())
	return n
}

func TestTransformDocumentsKeepsOrder(t *testing.T) {
	export := testExport()
	mapper, err := transform.NewMapper(logger.NewTestLogger(), export, internal.Options{IntlMode: internal.IntlModeMultiple}, transform.StableKeys)
	require.NoError(t, err)

	jobs := documentJobs(export, mapper)
	require.Len(t, jobs, 5)
	docs, err := transformDocuments(context.Background(), logger.NewTestLogger(), mapper, jobs, 3)
	require.NoError(t, err)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID())
	}
	assert.Equal(t, []string{"news", "a", "i18n.a.fr", "b", "i18n.b.fr"}, ids)
}

func TestTransformDocumentsSingleWorker(t *testing.T) {
	export := testExport()
	export.Tags = nil
	export.Entries = export.Entries[:1]
	mapper, err := transform.NewMapper(logger.NewTestLogger(), export, internal.Options{}, transform.StableKeys)
	require.NoError(t, err)
	ctx := context.Background()
	docs, err := transformDocuments(ctx, logger.NewTestLogger(), mapper, documentJobs(export, mapper), 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID())
	assert.NoError(t, ctx.Err())
}

func TestTransformDocumentsCancelled(t *testing.T) {
	export := testExport()
	mapper, err := transform.NewMapper(logger.NewTestLogger(), export, internal.Options{}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = transformDocuments(ctx, logger.NewTestLogger(), mapper, documentJobs(export, mapper), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentWriterIncremental(t *testing.T) {
	dir := t.TempDir()
	export := testExport()
	mapper, err := transform.NewMapper(logger.NewTestLogger(), export, internal.Options{}, transform.StableKeys)
	require.NoError(t, err)
	docs, err := transformDocuments(context.Background(), logger.NewTestLogger(), mapper, documentJobs(export, mapper), 2)
	require.NoError(t, err)

	run := func(fn string) *documentWriter {
		tr, err := tracker.NewTracker(tracker.TrackerConfig{Context: context.Background(), Logger: logger.NewTestLogger(), Dir: dir})
		require.NoError(t, err)
		defer tr.Close()
		enc, err := util.NewNDJSONEncoder(fn)
		require.NoError(t, err)
		w := &documentWriter{enc: enc, tracker: tr, hashes: map[string]string{}, seen: map[string]bool{}}
		for _, doc := range docs {
			require.NoError(t, w.write(doc))
		}
		require.NoError(t, enc.Close())
		require.NoError(t, tr.Record(w.hashes))
		return w
	}

	first := filepath.Join(dir, "first.ndjson")
	w := run(first)
	assert.Equal(t, 3, w.enc.Count())
	assert.Equal(t, 0, w.skipped)
	assert.Equal(t, 3, countLines(t, first))

	docs[1]["title"] = "changed"
	second := filepath.Join(dir, "second.ndjson.gz")
	w = run(second)
	assert.Equal(t, 1, w.enc.Count())
	assert.Equal(t, 2, w.skipped)
}

func TestWriteManifest(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "manifest.toml")
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	manifest := Manifest{
		Export:    "export.json",
		Output:    "documents.ndjson",
		Started:   started,
		Finished:  started.Add(time.Second),
		IntlMode:  "single",
		Locales:   []string{"en-US"},
		Documents: 3,
		Removed:   []string{"gone"},
	}
	require.NoError(t, writeManifest(fn, manifest))
	var decoded Manifest
	_, err := toml.DecodeFile(fn, &decoded)
	require.NoError(t, err)
	assert.True(t, started.Equal(decoded.Started))
	assert.True(t, manifest.Finished.Equal(decoded.Finished))
	decoded.Started, decoded.Finished = manifest.Started, manifest.Finished
	assert.Equal(t, manifest, decoded)
}
