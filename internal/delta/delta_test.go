package delta

import (
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

func TestParse_TextAndEmbed(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[
		{"insert":{"mention":{"id":"123","value":"田中美和"}}},
		{"insert":"Hello\n","attributes":{"bold":true,"header":2,"link":"https://sample.com/1"}}
	]}`))
	require.NoError(t, err)
	require.Len(t, doc.Ops, 2)

	require.True(t, doc.Ops[0].IsEmbed())
	m, ok, err := MentionOf(doc.Ops[0].Insert, "mention")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "123", m.ID)
	require.Equal(t, "田中美和", m.Value)

	op := doc.Ops[1]
	require.NoError(t, op.Err)
	require.Equal(t, InsertText, op.Insert.Kind)
	require.Equal(t, "Hello\n", op.Insert.Text)
	require.True(t, op.Attributes.Bold)
	require.Equal(t, 2, op.Attributes.Header)
	require.Equal(t, "https://sample.com/1", op.Attributes.Link)
}

func TestParse_BareArray(t *testing.T) {
	doc, err := Parse([]byte(`[{"insert":"a"},{"insert":"\n"}]`))
	require.NoError(t, err)
	require.Len(t, doc.Ops, 2)
}

func TestParse_DocumentLevelFailures(t *testing.T) {
	cases := map[string]string{
		"empty":        ``,
		"broken json":  `{"ops":[`,
		"missing ops":  `{"foo":[]}`,
		"null ops":     `{"ops":null}`,
		"ops not list": `{"ops":"text"}`,
		"scalar":       `42`,
		"string":       `"ops"`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
			require.ErrorIs(t, err, appErr.ErrInvalidDocument)
		})
	}
}

func TestParse_OperationLevelFailuresAreKept(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[
		{"attributes":{"bold":true}},
		{"insert":42},
		"not an object",
		{"insert":"x","attributes":{"header":"big"}},
		{"insert":"x","attributes":[1]},
		{"insert":"ok"}
	]}`))
	require.NoError(t, err)
	require.Len(t, doc.Ops, 6)
	require.ErrorIs(t, doc.Ops[0].Err, appErr.ErrMalformedOp)
	require.ErrorIs(t, doc.Ops[1].Err, appErr.ErrUnsupportedPayload)
	require.ErrorIs(t, doc.Ops[2].Err, appErr.ErrMalformedOp)
	require.ErrorIs(t, doc.Ops[3].Err, appErr.ErrInvalidAttribute)
	require.ErrorIs(t, doc.Ops[4].Err, appErr.ErrMalformedOp)
	require.NoError(t, doc.Ops[5].Err)
	require.JSONEq(t, `{"insert":42}`, string(doc.Ops[1].Raw))
}

func TestParse_CodeBlockAliases(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[
		{"insert":"a","attributes":{"code-block":true}},
		{"insert":"b","attributes":{"code_block":true}},
		{"insert":"c","attributes":{"code-block":"go"}},
		{"insert":"d","attributes":{"code-block":false}}
	]}`))
	require.NoError(t, err)
	require.True(t, doc.Ops[0].Attributes.CodeBlock)
	require.True(t, doc.Ops[1].Attributes.CodeBlock)
	require.True(t, doc.Ops[2].Attributes.CodeBlock)
	require.Equal(t, "go", doc.Ops[2].Attributes.CodeLanguage)
	require.False(t, doc.Ops[3].Attributes.CodeBlock)
}

func TestParse_CanonicalSpellingWins(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[
		{"insert":"a","attributes":{"code-block":true,"code_block":false}},
		{"insert":"b","attributes":{"code_block":true,"code-block":false}}
	]}`))
	require.NoError(t, err)
	require.True(t, doc.Ops[0].Attributes.CodeBlock)
	require.False(t, doc.Ops[1].Attributes.CodeBlock)
}

func TestParser_ConfiguredAlias(t *testing.T) {
	p := NewParser(NewKeySet(map[string]string{"quote": KeyBlockquote}))
	doc, warnings, err := p.Parse([]byte(`{"ops":[{"insert":"a","attributes":{"quote":true}}]}`))
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.True(t, doc.Ops[0].Attributes.Blockquote)
}

func TestParser_Truthiness(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[
		{"insert":"a","attributes":{"bold":0,"italic":null,"header":0,"link":"","indent":"2"}}
	]}`))
	require.NoError(t, err)
	attrs := doc.Ops[0].Attributes
	require.False(t, attrs.Bold)
	require.False(t, attrs.Italic)
	require.Zero(t, attrs.Header)
	require.Empty(t, attrs.Link)
	require.Equal(t, 2, attrs.Indent)
}

func TestParser_UnknownKeyWarnings(t *testing.T) {
	doc, warnings, err := NewParser(nil).Parse([]byte(`{"ops":[
		{"insert":"a","attributes":{"bolt":true,"font":"serif","zzzzzzzzzz":1}}
	]}`))
	require.NoError(t, err)
	require.NoError(t, doc.Ops[0].Err)
	require.Len(t, doc.Ops[0].Attributes.Extra, 3)
	require.Len(t, warnings, 3)

	byKey := map[string]Warning{}
	for _, w := range warnings {
		byKey[w.Key] = w
	}
	require.Equal(t, "bold", byKey["bolt"].Suggestion)
	require.Equal(t, 0, byKey["bolt"].Index)
	require.Empty(t, byKey["zzzzzzzzzz"].Suggestion)
}

func TestStringEmbed(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[{"insert":{"image":"https://img/1.png"}},{"insert":{"image":3}}]}`))
	require.NoError(t, err)

	url, ok, err := StringEmbed(doc.Ops[0].Insert, "image")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://img/1.png", url)

	_, ok, err = StringEmbed(doc.Ops[1].Insert, "image")
	require.True(t, ok)
	require.ErrorIs(t, err, appErr.ErrMalformedOp)
}

func TestMentionOf_MissingValue(t *testing.T) {
	doc, err := Parse([]byte(`{"ops":[{"insert":{"mention":{"id":"1"}}}]}`))
	require.NoError(t, err)
	_, ok, err := MentionOf(doc.Ops[0].Insert, "mention")
	require.True(t, ok)
	require.ErrorIs(t, err, appErr.ErrMalformedOp)
}

func TestKeySet(t *testing.T) {
	ks := NewKeySet(map[string]string{" quote ": "blockquote", "": "x"})
	require.Equal(t, KeyCodeBlock, ks.Canonical("code_block"))
	require.Equal(t, KeyBlockquote, ks.Canonical("quote"))
	require.Equal(t, "bold", ks.Canonical("bold"))
	require.Equal(t, [][2]string{{"code_block", "code-block"}, {"quote", "blockquote"}}, ks.Aliases())
	require.Equal(t, "code-block", Suggest("code_blok"))
	require.Equal(t, "color", Suggest("colour"))
}
