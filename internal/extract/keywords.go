package extract

import (
	"regexp"
	"strings"
)

// MaxKeywords bounds how many keywords one citation context contributes.
const MaxKeywords = 10

// wordPattern matches runs of at least four Cyrillic letters. The alphabet
// tracks the document language script; title-cased words are handled by
// lowering the text before tokenizing.
var wordPattern = regexp.MustCompile(`[а-яё]{4,}`)

// Keywords derives up to MaxKeywords salient lowercase terms from a
// citation's context text. Blank input yields no keywords rather than an
// error: "no evidence available" is a normal condition, not a failure.
// Output is deterministic: first-seen order, duplicates removed.
func Keywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]struct{}, len(tokens))
	var keywords []string
	for _, token := range tokens {
		if IsStopword(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == MaxKeywords {
			break
		}
	}

	return keywords
}
