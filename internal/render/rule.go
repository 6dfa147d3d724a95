package render

import (
	"strings"

	"github.com/xxxsen/deltamd/internal/delta"
)

// Options carries the tunables that rules read while rendering.
type Options struct {
	ListIndentWidth int
	ImageAlt        string
}

func defaultOptions() Options {
	return Options{ListIndentWidth: 4, ImageAlt: "Image"}
}

// Rule maps one attribute to markup. Rules are evaluated in order and the
// first match wins. A Block rule on an operation with empty text formats the
// most recent open line instead of emitting a new one. Render returns false
// when it declines to produce a line.
type Rule struct {
	Name   string
	Block  bool
	Match  func(attrs delta.Attributes) bool
	Render func(text string, attrs delta.Attributes, opts Options) (string, bool)
}

const (
	RuleHeader     = "header"
	RuleBold       = "bold"
	RuleItalic     = "italic"
	RuleUnderline  = "underline"
	RuleLink       = "link"
	RuleCodeBlock  = "code-block"
	RuleBlockquote = "blockquote"
	RuleImage      = "image"
	RuleList       = "list"
	RulePlain      = "plain"
	RuleFallback   = "fallback"
)

// DefaultRules returns a fresh copy of the markdown rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  RuleHeader,
			Block: true,
			Match: func(a delta.Attributes) bool { return a.Header > 0 },
			Render: func(text string, a delta.Attributes, _ Options) (string, bool) {
				level := a.Header
				if level > 6 {
					level = 6
				}
				return strings.Repeat("#", level) + " " + text, true
			},
		},
		{
			Name:  RuleBold,
			Match: func(a delta.Attributes) bool { return a.Bold },
			Render: func(text string, _ delta.Attributes, _ Options) (string, bool) {
				return "**" + text + "**", true
			},
		},
		{
			Name:  RuleItalic,
			Match: func(a delta.Attributes) bool { return a.Italic },
			Render: func(text string, _ delta.Attributes, _ Options) (string, bool) {
				return "*" + text + "*", true
			},
		},
		{
			Name:  RuleUnderline,
			Match: func(a delta.Attributes) bool { return a.Underline },
			Render: func(text string, _ delta.Attributes, _ Options) (string, bool) {
				return "<u>" + text + "</u>", true
			},
		},
		{
			Name:  RuleLink,
			Match: func(a delta.Attributes) bool { return a.Link != "" },
			Render: func(text string, a delta.Attributes, _ Options) (string, bool) {
				return "[" + text + "](" + a.Link + ")", true
			},
		},
		{
			Name:  RuleCodeBlock,
			Block: true,
			Match: func(a delta.Attributes) bool { return a.CodeBlock },
			Render: func(text string, a delta.Attributes, _ Options) (string, bool) {
				return "```" + a.CodeLanguage + "\n" + text + "\n```", true
			},
		},
		{
			Name:  RuleBlockquote,
			Block: true,
			Match: func(a delta.Attributes) bool { return a.Blockquote },
			Render: func(text string, _ delta.Attributes, _ Options) (string, bool) {
				return "> " + text, true
			},
		},
		{
			Name:  RuleImage,
			Match: func(a delta.Attributes) bool { return a.Image != "" },
			Render: func(_ string, a delta.Attributes, opts Options) (string, bool) {
				return imageMarkup(opts.ImageAlt, a.Image), true
			},
		},
		{
			Name:   RuleList,
			Block:  true,
			Match:  func(a delta.Attributes) bool { return a.List != "" },
			Render: renderListItem,
		},
	}
}

// MaxListIndent is the deepest nesting level the editor produces.
const MaxListIndent = 8

func renderListItem(text string, a delta.Attributes, opts Options) (string, bool) {
	var marker string
	switch a.List {
	case "bullet":
		marker = "- "
	case "ordered":
		marker = "1. "
	case "checked":
		marker = "- [x] "
	case "unchecked":
		marker = "- [ ] "
	default:
		return "", false
	}
	indent := a.Indent
	if indent < 0 {
		indent = 0
	}
	if indent > MaxListIndent {
		indent = MaxListIndent
	}
	return strings.Repeat(" ", indent*opts.ListIndentWidth) + marker + text, true
}

func imageMarkup(alt, target string) string {
	return "![" + alt + "](" + target + ")"
}
