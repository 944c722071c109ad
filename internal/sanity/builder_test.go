package sanity

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldBuilder(t *testing.T) {
	f, err := String("title").
		Title("Title").
		Description("the title").
		Validation([]Rule{{Flag: FlagPresence, Constraint: Required}}).
		List("a", "b").
		Layout("radio").
		Build()
	require.NoError(t, err)
	assert.Equal(t, Field{
		Name:        "title",
		Type:        TypeString,
		Title:       "Title",
		Description: "the title",
		Validation:  []Rule{{Flag: FlagPresence, Constraint: Required}},
		Options:     &Options{List: []any{"a", "b"}, Layout: "radio"},
	}, f)
}

func TestFieldBuilderNormalizesEmpty(t *testing.T) {
	f, err := Number("count").Validation([]Rule{}).InitialValue(map[string]any{}).Build()
	require.NoError(t, err)
	assert.Equal(t, Field{Name: "count", Type: TypeNumber}, f)
	assert.Nil(t, f.Options)
}

func TestFieldBuilderDoesNotShare(t *testing.T) {
	rules := []Rule{{Flag: FlagUnique}}
	b := Slug("slug").Validation(rules).Source("title")
	f := b.MustBuild()
	rules[0] = Rule{Flag: FlagMin, Constraint: 1}
	assert.Equal(t, FlagUnique, f.Validation[0].Flag)
	g := b.Source("name").MustBuild()
	assert.Equal(t, "title", f.Options.Source)
	assert.Equal(t, "name", g.Options.Source)
}

func TestFieldBuilderInvalidOption(t *testing.T) {
	_, err := Boolean("flag").Source("title").Build()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidField))

	_, err = String("s").To("post").Build()
	assert.True(t, errors.Is(err, ErrInvalidField))

	assert.Panics(t, func() { Geopoint("g").Of(Member("x")).MustBuild() })
}

func TestFieldBuilderAnonymous(t *testing.T) {
	f := Reference("author").To("author", "person").Anonymous()
	assert.Equal(t, Field{Type: TypeReference, To: []TypeRef{{Type: "author"}, {Type: "person"}}}, f)
}

func TestFieldHasMember(t *testing.T) {
	block := Block("block").Of(Member("author")).Anonymous()
	f := Array("body").Of(block, Member(TypeBreak)).MustBuild()
	assert.True(t, f.HasMember(TypeBreak))
	assert.True(t, f.HasMember("author"))
	assert.False(t, f.HasMember(TypeImage))

	s := Schema{Type: TypeDocument, Name: "post", Fields: []Field{f}}
	assert.True(t, s.HasMember(TypeBreak))
	assert.False(t, Schema{Name: "empty"}.HasMember(TypeBreak))
}

func TestIsReservedName(t *testing.T) {
	assert.True(t, IsReservedName("image"))
	assert.True(t, IsReservedName("sanity.imageAsset"))
	assert.False(t, IsReservedName("blogPost"))
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("abc", "post", "2022-01-01", "2022-01-02")
	assert.Equal(t, "abc", doc.ID())
	assert.Equal(t, "post", doc.Type())
	assert.Equal(t, "abc", doc["_rev"])
}
