package transform

import (
	"fmt"
	"strings"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New().Parser()

// markdown converts markdown text to portable text blocks and image objects.
type markdown struct {
	source []byte
	keys   KeyGenerator
	blocks []any
}

// MarkdownToBlocks converts markdown text to portable text.
func MarkdownToBlocks(src string, keys KeyGenerator) []any {
	md := &markdown{source: []byte(src), keys: keys, blocks: []any{}}
	doc := markdownParser.Parse(text.NewReader(md.source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		md.block(n, "", 0)
	}
	return md.blocks
}

func (md *markdown) newBlock(style string, listItem string, level int) *sanity.BlockValue {
	return &sanity.BlockValue{
		Type:     sanity.TypeBlock,
		Key:      md.keys.Key(),
		Style:    style,
		ListItem: listItem,
		Level:    level,
		Children: []any{},
		MarkDefs: []sanity.MarkDef{},
	}
}

func (md *markdown) block(n ast.Node, listItem string, level int) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		md.textBlock(n, "normal", listItem, level)
	case *ast.Heading:
		md.textBlock(n, fmt.Sprintf("h%d", node.Level), listItem, level)
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*ast.Paragraph); ok {
				md.textBlock(c, "blockquote", "", 0)
			}
		}
	case *ast.List:
		kind := "bullet"
		if node.IsOrdered() {
			kind = "number"
		}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				md.block(c, kind, level+1)
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(md.source))
		}
		block := md.newBlock("normal", listItem, level)
		block.Children = append(block.Children, md.span(strings.TrimSuffix(sb.String(), "\n"), []string{"code"}))
		md.blocks = append(md.blocks, block)
	}
}

func (md *markdown) span(text string, marks []string) *sanity.Span {
	return &sanity.Span{Type: sanity.TypeSpan, Key: md.keys.Key(), Text: text, Marks: append([]string{}, marks...)}
}

func (md *markdown) textBlock(n ast.Node, style string, listItem string, level int) {
	block := md.newBlock(style, listItem, level)
	var images []any
	var walk func(n ast.Node, marks []string)
	walk = func(n ast.Node, marks []string) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				value := string(node.Segment.Value(md.source))
				if node.SoftLineBreak() {
					value += " "
				}
				if node.HardLineBreak() {
					value += "\n"
				}
				block.Children = append(block.Children, md.span(value, marks))
			case *ast.String:
				block.Children = append(block.Children, md.span(string(node.Value), marks))
			case *ast.CodeSpan:
				var sb strings.Builder
				for t := c.FirstChild(); t != nil; t = t.NextSibling() {
					if txt, ok := t.(*ast.Text); ok {
						sb.Write(txt.Segment.Value(md.source))
					}
				}
				block.Children = append(block.Children, md.span(sb.String(), append(append([]string{}, marks...), "code")))
			case *ast.Emphasis:
				mark := "em"
				if node.Level >= 2 {
					mark = "strong"
				}
				walk(c, append(append([]string{}, marks...), mark))
			case *ast.Link:
				def := sanity.MarkDef{Type: "link", Key: md.keys.Key(), Href: string(node.Destination)}
				block.MarkDefs = append(block.MarkDefs, def)
				walk(c, append(append([]string{}, marks...), def.Key))
			case *ast.AutoLink:
				url := string(node.URL(md.source))
				def := sanity.MarkDef{Type: "link", Key: md.keys.Key(), Href: url}
				block.MarkDefs = append(block.MarkDefs, def)
				block.Children = append(block.Children, md.span(url, append(append([]string{}, marks...), def.Key)))
			case *ast.Image:
				images = append(images, &sanity.AssetObject{
					Type:  sanity.TypeImage,
					Key:   md.keys.Key(),
					Asset: sanity.TypeImage + "@" + absoluteURL(string(node.Destination)),
				})
			default:
				walk(c, marks)
			}
		}
	}
	walk(n, nil)
	if len(block.Children) > 0 {
		md.blocks = append(md.blocks, block)
	}
	md.blocks = append(md.blocks, images...)
}
