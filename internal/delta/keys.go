package delta

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Canonical attribute keys.
const (
	KeyHeader     = "header"
	KeyBold       = "bold"
	KeyItalic     = "italic"
	KeyUnderline  = "underline"
	KeyStrike     = "strike"
	KeyLink       = "link"
	KeyList       = "list"
	KeyIndent     = "indent"
	KeyBlockquote = "blockquote"
	KeyCodeBlock  = "code-block"
	KeyImage      = "image"
	KeyColor      = "color"
	KeyBackground = "background"
)

var knownKeys = []string{
	KeyHeader, KeyBold, KeyItalic, KeyUnderline, KeyStrike, KeyLink, KeyList,
	KeyIndent, KeyBlockquote, KeyCodeBlock, KeyImage, KeyColor, KeyBackground,
}

const maxSuggestDistance = 3

// DefaultAliases maps alternative spellings seen in editor output to canonical keys.
func DefaultAliases() map[string]string {
	return map[string]string{
		"code_block": KeyCodeBlock,
	}
}

func KnownKeys() []string {
	out := make([]string, len(knownKeys))
	copy(out, knownKeys)
	return out
}

func isKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// KeySet resolves attribute spellings to canonical keys.
type KeySet struct {
	aliases map[string]string
}

func NewKeySet(extra map[string]string) *KeySet {
	aliases := DefaultAliases()
	for alias, key := range extra {
		alias = strings.TrimSpace(alias)
		key = strings.TrimSpace(key)
		if alias == "" || key == "" {
			continue
		}
		aliases[alias] = key
	}
	return &KeySet{aliases: aliases}
}

func (k *KeySet) Canonical(key string) string {
	if k != nil {
		if canonical, ok := k.aliases[key]; ok {
			return canonical
		}
	}
	return key
}

// Aliases returns the alias table sorted by alias.
func (k *KeySet) Aliases() [][2]string {
	out := make([][2]string, 0, len(k.aliases))
	for alias, key := range k.aliases {
		out = append(out, [2]string{alias, key})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Suggest returns the recognized key closest to an unknown one, or "".
func Suggest(key string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	lowered := strings.ToLower(key)
	for _, known := range knownKeys {
		dist := fuzzy.LevenshteinDistance(lowered, known)
		if dist < bestDist {
			best = known
			bestDist = dist
		}
	}
	return best
}
