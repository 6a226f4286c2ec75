package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentences(t *testing.T) {
	got := Sentences("First one.  Second\n one!  Is it third? trailing words")
	assert.Equal(t, []string{"First one.", "Second one!", "Is it third?", "trailing words"}, got)
	assert.Empty(t, Sentences("   "))
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "Search engines rank documents. Cats sleep. Ranking documents needs search terms. Dogs bark."
	got, err := NewFrequencySummarizer().Summarize(text, 2)
	require.NoError(t, err)
	assert.Equal(t, "Search engines rank documents. Ranking documents needs search terms.", got)
}

func TestSummarizeShortText(t *testing.T) {
	got, err := NewFrequencySummarizer().Summarize("Only one sentence here.", 5)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", got)

	got, err = NewFrequencySummarizer().Summarize("", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
