package transform

import (
	"strings"
	"testing"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanTexts(block *sanity.BlockValue) []string {
	var res []string
	for _, c := range block.Children {
		if s, ok := c.(*sanity.Span); ok {
			res = append(res, s.Text)
		}
	}
	return res
}

func TestMarkdownToBlocksEmpty(t *testing.T) {
	assert.Equal(t, []any{}, MarkdownToBlocks("", &sequentialKeys{}))
}

func TestMarkdownToBlocksParagraphs(t *testing.T) {
	blocks := MarkdownToBlocks("first line\nsecond line\n\n## Heading\n\n> quoted", &sequentialKeys{})
	require.Len(t, blocks, 3)

	para := blocks[0].(*sanity.BlockValue)
	assert.Equal(t, "normal", para.Style)
	assert.Equal(t, "first line second line", strings.Join(spanTexts(para), ""))

	assert.Equal(t, "h2", blocks[1].(*sanity.BlockValue).Style)
	assert.Equal(t, []string{"Heading"}, spanTexts(blocks[1].(*sanity.BlockValue)))

	quote := blocks[2].(*sanity.BlockValue)
	assert.Equal(t, "blockquote", quote.Style)
	assert.Equal(t, []string{"quoted"}, spanTexts(quote))
}

func TestMarkdownToBlocksMarks(t *testing.T) {
	blocks := MarkdownToBlocks("a *b* **c** `d`", &sequentialKeys{})
	require.Len(t, blocks, 1)
	marks := map[string][]string{}
	for _, c := range blocks[0].(*sanity.BlockValue).Children {
		span := c.(*sanity.Span)
		marks[span.Text] = span.Marks
	}
	assert.Equal(t, []string{"em"}, marks["b"])
	assert.Equal(t, []string{"strong"}, marks["c"])
	assert.Equal(t, []string{"code"}, marks["d"])
	assert.Equal(t, "a b c d", strings.Join(spanTexts(blocks[0].(*sanity.BlockValue)), ""))
}

func TestMarkdownToBlocksCode(t *testing.T) {
	blocks := MarkdownToBlocks("`x := 1`", &sequentialKeys{})
	require.Len(t, blocks, 1)
	span := blocks[0].(*sanity.BlockValue).Children[0].(*sanity.Span)
	assert.Equal(t, "x := 1", span.Text)
	assert.Equal(t, []string{"code"}, span.Marks)

	blocks = MarkdownToBlocks("```\nline one\nline two\n```", &sequentialKeys{})
	require.Len(t, blocks, 1)
	span = blocks[0].(*sanity.BlockValue).Children[0].(*sanity.Span)
	assert.Equal(t, "line one\nline two", span.Text)
	assert.Equal(t, []string{"code"}, span.Marks)
}

func TestMarkdownToBlocksLinks(t *testing.T) {
	blocks := MarkdownToBlocks("see [docs](https://example.com/docs)", &sequentialKeys{})
	require.Len(t, blocks, 1)
	block := blocks[0].(*sanity.BlockValue)
	require.Len(t, block.MarkDefs, 1)
	def := block.MarkDefs[0]
	assert.Equal(t, "link", def.Type)
	assert.Equal(t, "https://example.com/docs", def.Href)
	require.Len(t, block.Children, 2)
	assert.Equal(t, []string{def.Key}, block.Children[1].(*sanity.Span).Marks)
	assert.Equal(t, "docs", block.Children[1].(*sanity.Span).Text)
}

func TestMarkdownToBlocksLists(t *testing.T) {
	blocks := MarkdownToBlocks("- one\n- two\n  1. nested\n", &sequentialKeys{})
	require.Len(t, blocks, 3)
	assert.Equal(t, "bullet", blocks[0].(*sanity.BlockValue).ListItem)
	assert.Equal(t, 1, blocks[0].(*sanity.BlockValue).Level)
	assert.Equal(t, []string{"two"}, spanTexts(blocks[1].(*sanity.BlockValue)))
	nested := blocks[2].(*sanity.BlockValue)
	assert.Equal(t, "number", nested.ListItem)
	assert.Equal(t, 2, nested.Level)
	assert.Equal(t, []string{"nested"}, spanTexts(nested))
}

func TestMarkdownToBlocksImages(t *testing.T) {
	blocks := MarkdownToBlocks("before ![alt](//images.example.com/a.png)", &sequentialKeys{})
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"before "}, spanTexts(blocks[0].(*sanity.BlockValue)))
	img := blocks[1].(*sanity.AssetObject)
	assert.Equal(t, "image", img.Type)
	assert.Equal(t, "image@https://images.example.com/a.png", img.Asset)
	assert.NotEmpty(t, img.Key)
}

func TestMarkdownToBlocksThematicBreak(t *testing.T) {
	blocks := MarkdownToBlocks("one\n\n---\n\ntwo", &sequentialKeys{})
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"one"}, spanTexts(blocks[0].(*sanity.BlockValue)))
	assert.Equal(t, []string{"two"}, spanTexts(blocks[1].(*sanity.BlockValue)))
}
