// Package tokenize splits definition strings into word tokens.
// Tokens keep their original case; callers lowercase them.
package tokenize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ErrLostText is returned when the tokens do not reproduce the input text.
var ErrLostText = errors.New("tokens do not cover input text")

// Tokenizer maps raw text to an ordered token sequence.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// New returns the tokenizer registered under name ("prose" or "whitespace").
func New(name string) (Tokenizer, error) {
	switch name {
	case "prose":
		return Prose{}, nil
	case "whitespace":
		return Whitespace{}, nil
	}
	return nil, fmt.Errorf("tokenize: unknown tokenizer %q", name)
}

// Prose tokenizes with prose's rule-based English tokenizer, which splits
// punctuation, contractions and quotes the way spaCy's English defaults do.
// Tagging, sentence segmentation and entity extraction are disabled.
//
// prose can drop affixes it fails to peel (quoted words, a contraction
// followed by punctuation). Its output is kept only when the tokens cover
// every non-space rune of the input; otherwise the text is split by
// SplitAffixes instead.
type Prose struct {
	// split overrides the prose call in tests.
	split func(text string) ([]string, error)
}

func (p Prose) Tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	split := p.split
	if split == nil {
		split = proseTokens
	}
	tokens, err := split(text)
	if err != nil {
		return nil, err
	}
	if Covers(tokens, text) {
		return tokens, nil
	}

	tokens = SplitAffixes(text)
	if !Covers(tokens, text) {
		return nil, fmt.Errorf("tokenize %q: %w", text, ErrLostText)
	}
	return tokens, nil
}

func proseTokens(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose tokenize: %w", err)
	}

	docTokens := doc.Tokens()
	tokens := make([]string, 0, len(docTokens))
	for _, tok := range docTokens {
		if tok.Text == "" {
			continue
		}
		tokens = append(tokens, tok.Text)
	}
	return tokens, nil
}

// Whitespace splits on runs of Unicode white space.
type Whitespace struct{}

func (Whitespace) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}
