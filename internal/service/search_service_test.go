package service

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
	"irsearch/internal/index"
	"irsearch/internal/metrics"
	"irsearch/internal/summarizer"
	"irsearch/internal/tokenizer"
)

func newService(t *testing.T) (*SearchServiceImpl, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	ix := index.New(tokenizer.New(tokenizer.Options{}), index.Config{MaxDistance: 2}, nil)
	return NewSearchService(ix, summarizer.NewFrequencySummarizer(), 2, m, nil), m
}

func corpus() []domain.Document {
	return []domain.Document{
		{ID: "machine_learning", Title: "Machine Learning", Text: "Machine learning uses algorithms to learn from data."},
		{ID: "web_development", Title: "Web Development", Text: "Web development involves creating websites."},
		{ID: "data_science", Title: "Data Science", Text: "Data science extracts insights from data."},
	}
}

func TestIngestRejectsEmptyCorpus(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Ingest(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, svc.Stats().IsBuilt)
}

func TestIngestAndSearch(t *testing.T) {
	svc, m := newService(t)
	require.NoError(t, svc.Ingest(corpus()))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DocumentsIndexed))
	assert.Equal(t, float64(svc.Stats().VocabularySize), testutil.ToFloat64(m.VocabularySize))
	assert.NotEmpty(t, svc.Summary())

	results, err := svc.Search("learning algorithms", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "machine_learning", results[0].DocumentID)
	assert.Equal(t, "Machine Learning", results[0].Title)

	_, err = svc.Search("zzz", 2)
	require.NoError(t, err)
	_, err = svc.Search("data", 0)
	assert.True(t, apperrors.IsValidation(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultZeroResult)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultError)))
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(string, int) (string, error) {
	return "", errors.New("summarizer unavailable")
}

func TestIngestSurvivesSummaryFailure(t *testing.T) {
	ix := index.New(tokenizer.New(tokenizer.Options{}), index.Config{}, nil)
	svc := NewSearchService(ix, failingSummarizer{}, 2, nil, nil)

	require.NoError(t, svc.Ingest(corpus()))
	assert.True(t, svc.Stats().IsBuilt)
	assert.Empty(t, svc.Summary())

	results, err := svc.Search("data", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "data_science", results[0].DocumentID)
}

func TestIngestTwiceFails(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Ingest(corpus()))
	assert.True(t, apperrors.IsState(svc.Ingest(corpus())))
}

func TestSearchBeforeIngest(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Search("data", 3)
	assert.True(t, apperrors.IsState(err))
}

func TestView(t *testing.T) {
	svc, m := newService(t)
	require.NoError(t, svc.Ingest(corpus()))

	doc, err := svc.View("data_science")
	require.NoError(t, err)
	assert.Equal(t, "Data science extracts insights from data.", doc.Text)

	doc, err = svc.View("web")
	require.NoError(t, err)
	assert.Equal(t, "web_development", doc.ID)

	doc, err = svc.View("machine_lerning")
	require.NoError(t, err)
	assert.Equal(t, "machine_learning", doc.ID)

	_, err = svc.View("quantum")
	assert.True(t, apperrors.IsNotFound(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("exact")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("fuzzy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("not_found")))
}

func TestListIsSorted(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Ingest(corpus()))
	list := svc.List()
	require.Len(t, list, 3)
	assert.Equal(t, "data_science", list[0].ID)
	assert.Equal(t, 6, list[0].Length)
}
