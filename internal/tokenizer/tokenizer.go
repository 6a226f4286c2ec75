// Package tokenizer turns document and query text into normalized terms.
// Text is NFC-normalized and lower-cased, then split on every rune that is
// not a letter, number or combining mark. Stopword removal and stemming are
// available but off by default.
package tokenizer

import (
	"iter"
	"slices"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Options selects the optional filters applied after splitting.
type Options struct {
	Stopwords bool
	Stemming  bool
}

// Tokenizer is safe for concurrent use; it holds no per-call state.
type Tokenizer struct {
	stopwords map[string]struct{}
	stem      bool
}

// New creates a tokenizer with the given filters.
func New(opts Options) *Tokenizer {
	t := &Tokenizer{stem: opts.Stemming}
	if opts.Stopwords {
		t.stopwords = defaultStopwords()
	}
	return t
}

// Terms returns a lazy sequence of the normalized terms of text. The
// sequence can be ranged over any number of times and always yields the
// same terms for the same text.
func (t *Tokenizer) Terms(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		normalized := normalize(text)
		start := -1
		for i, r := range normalized {
			if isTermRune(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !t.emit(normalized[start:i], yield) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			t.emit(normalized[start:], yield)
		}
	}
}

// Tokenize collects Terms into a slice.
func (t *Tokenizer) Tokenize(text string) []string {
	return slices.Collect(t.Terms(text))
}

func (t *Tokenizer) emit(term string, yield func(string) bool) bool {
	if _, isStop := t.stopwords[term]; isStop {
		return true
	}
	if t.stem {
		term = english.Stem(term, false)
		if term == "" {
			return true
		}
	}
	return yield(term)
}

// normalize creates a fresh Caser per call; a Caser carries state and must
// not be shared between goroutines.
func normalize(text string) string {
	return norm.NFC.String(cases.Lower(language.Und).String(text))
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
