package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
	"irsearch/internal/tokenizer"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "ab", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"été", "ete", 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Levenshtein(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
		assert.Equal(t, tc.want, Levenshtein(tc.b, tc.a), "%q vs %q", tc.b, tc.a)
	}
}

func TestMatcher(t *testing.T) {
	ids := []string{"machine_learning", "dog_facts", "catalog", "cat_facts"}
	m := Matcher{MaxDistance: 2}

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"exact", "catalog", "catalog", true},
		{"case insensitive", "Cat_Facts", "cat_facts", true},
		{"substring prefers shortest", "cat", "catalog", true},
		{"substring tie is lexicographic", "facts", "cat_facts", true},
		{"misspelled", "machine_lerning", "machine_learning", true},
		{"too far", "zebra", "", false},
		{"blank", "  ", "", false},
		{"surrounding spaces", " dog_facts ", "dog_facts", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Match(tc.input, ids)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatcherRejectsShortUnrelatedInput(t *testing.T) {
	ids := []string{"ai", "ml", "doc1", "web_development"}
	m := Matcher{MaxDistance: 2}

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"two letters two edits away", "go", "", false},
		{"two letters nothing shared", "xy", "", false},
		{"single letter inside an id", "e", "", false},
		{"single letter inside a short id", "o", "", false},
		{"two letter substring", "oc", "", false},
		{"short exact still matches", "ML", "ml", true},
		{"one edit on a two letter id", "al", "ai", true},
		{"three letter substring", "doc", "doc1", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Match(tc.input, ids)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatcherDistanceTie(t *testing.T) {
	m := Matcher{MaxDistance: 1}
	got, ok := m.Match("abc", []string{"abe", "abd"})
	require.True(t, ok)
	assert.Equal(t, "abd", got)
}

func TestMatcherZeroDistance(t *testing.T) {
	m := Matcher{}
	_, ok := m.Match("abx", []string{"abc"})
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	ix := New(tokenizer.New(tokenizer.Options{}), Config{MaxDistance: 2}, nil)
	_, err := ix.Resolve("doc1")
	assert.True(t, apperrors.IsState(err))

	require.NoError(t, ix.Build([]domain.Document{
		{ID: "python_programming", Text: "python"},
		{ID: "web_development", Text: "web"},
	}))

	id, err := ix.Resolve("web_development")
	require.NoError(t, err)
	assert.Equal(t, "web_development", id)

	id, err = ix.Resolve("python")
	require.NoError(t, err)
	assert.Equal(t, "python_programming", id)

	id, err = ix.Resolve("web_developmnt")
	require.NoError(t, err)
	assert.Equal(t, "web_development", id)

	_, err = ix.Resolve("quantum")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
