package mapper

import (
	"fmt"

	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
)

// MapItems resolves the item descriptor of an Array field to one member type. It returns nil for
// item types without a counterpart.
func MapItems(items *contentful.Items, export *contentful.Export) *sanity.Field {
	if items == nil {
		return nil
	}
	switch items.Type {
	case contentful.Symbol:
		b := sanity.String("")
		if values := allowedValues(items.Validations); len(values) > 0 {
			list := make([]any, 0, len(values))
			for _, v := range values {
				list = append(list, fmt.Sprint(v))
			}
			b.List(list...)
		}
		f := b.Anonymous()
		return &f
	case contentful.Link:
		if items.LinkType == contentful.LinkTypeAsset {
			f := assetBuilder("", items.Validations).Anonymous()
			return &f
		}
		f := sanity.Reference("").To(linkedTypes(items.Validations, export)...).Anonymous()
		return &f
	}
	return nil
}

func allowedValues(validations []contentful.Validation) []any {
	for _, v := range validations {
		if len(v.In) > 0 {
			return v.In
		}
	}
	return nil
}

// onlyImages returns true if a linkMimetypeGroup validation restricts the link to images.
func onlyImages(validations []contentful.Validation) bool {
	for _, v := range validations {
		if len(v.LinkMimetypeGroup) > 0 {
			return len(v.LinkMimetypeGroup) == 1 && v.LinkMimetypeGroup[0] == "image"
		}
	}
	return false
}

// AssetKind returns the schema type of an asset link with the validations. Links restricted to
// images are image fields, every other asset link is a file field.
func AssetKind(validations []contentful.Validation) string {
	if onlyImages(validations) {
		return sanity.TypeImage
	}
	return sanity.TypeFile
}

func assetBuilder(name string, validations []contentful.Validation) *sanity.FieldBuilder {
	if AssetKind(validations) == sanity.TypeImage {
		return sanity.Image(name)
	}
	return sanity.File(name)
}
