package transform

import (
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/mapper"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

// richText converts rich text documents to portable text for one document and locale.
type richText struct {
	m      *Mapper
	locale string
	keys   KeyGenerator
}

// convert returns the portable text blocks of the document node. Unknown nodes are dropped.
func (r *richText) convert(doc *contentful.Node) []any {
	blocks := make([]any, 0, len(doc.Content))
	for i := range doc.Content {
		blocks = append(blocks, r.blockNode(&doc.Content[i], "", 0)...)
	}
	return blocks
}

func (r *richText) blockNode(node *contentful.Node, listItem string, level int) []any {
	switch node.NodeType {
	case contentful.NodeHR:
		return []any{sanity.Break{Type: sanity.TypeBreak, Key: r.keys.Key(), Style: sanity.BreakStyleLineBreak}}
	case contentful.NodeBlockquote:
		var res []any
		for i := range node.Content {
			child := &node.Content[i]
			if child.NodeType == contentful.NodeParagraph {
				res = append(res, r.textBlock(child, "blockquote", "", 0))
			}
		}
		return res
	case contentful.NodeUnorderedList, contentful.NodeOrderedList:
		kind := "bullet"
		if node.NodeType == contentful.NodeOrderedList {
			kind = "number"
		}
		var res []any
		for i := range node.Content {
			item := &node.Content[i]
			if item.NodeType != contentful.NodeListItem {
				continue
			}
			for j := range item.Content {
				res = append(res, r.blockNode(&item.Content[j], kind, level+1)...)
			}
		}
		return res
	case contentful.NodeEmbeddedEntryBlock:
		if v := r.embedded(node); v != nil {
			return []any{v}
		}
		return nil
	case contentful.NodeEmbeddedAssetBlock:
		if v := r.embedded(node); v != nil {
			return []any{v}
		}
		return nil
	}
	if style, ok := mapper.StyleFor(node.NodeType); ok {
		return []any{r.textBlock(node, style, listItem, level)}
	}
	r.m.logger.Trace("dropping rich text node %s", node.NodeType)
	return nil
}

func (r *richText) embedded(node *contentful.Node) any {
	if node.Data.Target == nil {
		return nil
	}
	return r.m.linkValue(*node.Data.Target, r.locale, "", r.keys, true)
}

func (r *richText) textBlock(node *contentful.Node, style string, listItem string, level int) *sanity.BlockValue {
	block := &sanity.BlockValue{
		Type:     sanity.TypeBlock,
		Key:      r.keys.Key(),
		Style:    style,
		ListItem: listItem,
		Level:    level,
		Children: []any{},
		MarkDefs: []sanity.MarkDef{},
	}
	for i := range node.Content {
		r.inline(block, &node.Content[i], nil)
	}
	if len(block.Children) == 0 {
		block.Children = append(block.Children, &sanity.Span{Type: sanity.TypeSpan, Key: r.keys.Key(), Text: "", Marks: []string{}})
	}
	return block
}

func (r *richText) inline(block *sanity.BlockValue, node *contentful.Node, annotations []string) {
	switch node.NodeType {
	case contentful.NodeText:
		marks := make([]string, 0, len(node.Marks)+len(annotations))
		for _, m := range node.Marks {
			if d, ok := mapper.DecoratorFor(m.Type); ok {
				marks = append(marks, d)
			}
		}
		marks = append(marks, annotations...)
		block.Children = append(block.Children, &sanity.Span{Type: sanity.TypeSpan, Key: r.keys.Key(), Text: node.Value, Marks: marks})
		return
	case contentful.NodeEmbeddedEntryInline:
		if v := r.embedded(node); v != nil {
			block.Children = append(block.Children, v)
		}
		return
	}
	// the text of a link whose target is gone is kept without the annotation
	nested := annotations
	if def := r.markDef(node); def != nil {
		block.MarkDefs = append(block.MarkDefs, *def)
		nested = append(append([]string{}, annotations...), def.Key)
	} else {
		r.m.logger.Trace("dropping rich text annotation %s", node.NodeType)
	}
	for i := range node.Content {
		r.inline(block, &node.Content[i], nested)
	}
}

// markDef returns the annotation of a hyperlink node, or nil when the node is no hyperlink or its
// target cannot be resolved.
func (r *richText) markDef(node *contentful.Node) *sanity.MarkDef {
	switch node.NodeType {
	case contentful.NodeHyperlink:
		return &sanity.MarkDef{Type: mapper.AnnotationLink, Key: r.keys.Key(), Href: node.Data.URI}
	case contentful.NodeEntryHyperlink:
		if node.Data.Target == nil {
			return nil
		}
		ref := r.m.ResolveLink(*node.Data.Target, r.locale)
		if ref == nil {
			return nil
		}
		return &sanity.MarkDef{Type: mapper.AnnotationInternalLink, Key: r.keys.Key(), Reference: ref}
	case contentful.NodeAssetHyperlink:
		if node.Data.Target == nil {
			return nil
		}
		ref := r.m.ResolveLink(*node.Data.Target, r.locale)
		if ref == nil || !ref.IsAsset() {
			return nil
		}
		return &sanity.MarkDef{Type: mapper.AnnotationAssetLink, Key: r.keys.Key(), File: assetObject(ref, sanity.TypeFile)}
	}
	return nil
}
