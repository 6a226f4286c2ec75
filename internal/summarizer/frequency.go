// Package summarizer builds a short extractive summary of the corpus.
package summarizer

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strings"

	"irsearch/internal/tokenizer"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// FrequencySummarizer ranks sentences by how frequent their terms are across
// the text, ignoring stopwords.
type FrequencySummarizer struct {
	tokenizer *tokenizer.Tokenizer
}

func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{tokenizer: tokenizer.New(tokenizer.Options{Stopwords: true})}
}

// Summarize returns up to maxSentences sentences in their original order.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return "", nil
	}

	tokens := make([][]string, len(sentences))
	freq := make(map[string]float64)
	for i, sent := range sentences {
		tokens[i] = s.tokenizer.Tokenize(sent)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		maxF = max(maxF, v)
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i := range sentences {
		total := 0.0
		for _, tok := range tokens[i] {
			total += freq[tok] / maxF
		}
		// sqrt damping keeps long sentences from always winning
		if n := len(tokens[i]); n > 0 {
			total /= math.Sqrt(float64(n))
		}
		scores[i] = scored{idx: i, score: total}
	}
	slices.SortStableFunc(scores, func(a, b scored) int { return cmp.Compare(b.score, a.score) })

	selected := make([]int, 0, maxSentences)
	for _, sc := range scores[:min(maxSentences, len(scores))] {
		selected = append(selected, sc.idx)
	}
	slices.Sort(selected)
	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

// Sentences splits text on terminal punctuation. Trailing text without a
// terminator becomes its own sentence.
func Sentences(text string) []string {
	var out []string
	rest := text
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		if s := strings.Join(strings.Fields(text[loc[0]:loc[1]]), " "); s != "" {
			out = append(out, s)
		}
		rest = text[loc[1]:]
	}
	if s := strings.Join(strings.Fields(rest), " "); s != "" {
		out = append(out, s)
	}
	return out
}
