package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	prefixRunes = "\"'`([{¡¿«"
	suffixRunes = "\"'`)]}.,;:!?%»"
	ellipsis    = "..."
)

// contractions are peeled off the end of a word, longest first.
var contractions = []string{"n't", "'re", "'ve", "'ll", "'s", "'d", "'m"}

// SplitAffixes splits text on white space and then peels leading
// punctuation, trailing punctuation and English contraction suffixes off
// each chunk. Every non-space rune of text ends up in exactly one token.
func SplitAffixes(text string) []string {
	var tokens []string
	for _, chunk := range strings.Fields(text) {
		tokens = append(tokens, splitChunk(chunk)...)
	}
	return tokens
}

func splitChunk(chunk string) []string {
	var tokens []string
	for chunk != "" {
		r, size := utf8.DecodeRuneInString(chunk)
		if !strings.ContainsRune(prefixRunes, r) {
			break
		}
		tokens = append(tokens, chunk[:size])
		chunk = chunk[size:]
	}

	// Suffixes are collected right to left.
	var tail []string
	for chunk != "" {
		if strings.HasSuffix(chunk, ellipsis) {
			tail = append(tail, ellipsis)
			chunk = chunk[:len(chunk)-len(ellipsis)]
			continue
		}
		r, size := utf8.DecodeLastRuneInString(chunk)
		if strings.ContainsRune(suffixRunes, r) {
			tail = append(tail, chunk[len(chunk)-size:])
			chunk = chunk[:len(chunk)-size]
			continue
		}
		if n := contractionLen(chunk); n > 0 {
			tail = append(tail, chunk[len(chunk)-n:])
			chunk = chunk[:len(chunk)-n]
			continue
		}
		break
	}

	if chunk != "" {
		tokens = append(tokens, chunk)
	}
	for i := len(tail) - 1; i >= 0; i-- {
		tokens = append(tokens, tail[i])
	}
	return tokens
}

// contractionLen returns the byte length of a contraction suffix of word,
// or 0. A bare contraction is left whole.
func contractionLen(word string) int {
	for _, c := range contractions {
		if len(word) > len(c) && strings.EqualFold(word[len(word)-len(c):], c) {
			return len(c)
		}
	}
	return 0
}

// Covers reports whether tokens, concatenated in order, spell text with its
// white space removed.
func Covers(tokens []string, text string) bool {
	rest := text
	for _, tok := range tokens {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if tok == "" || !strings.HasPrefix(rest, tok) {
			return false
		}
		rest = rest[len(tok):]
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace) == ""
}
