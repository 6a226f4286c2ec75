package service

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
	"irsearch/internal/metrics"
)

// SearchServiceImpl wires the index, summarizer and metrics together.
type SearchServiceImpl struct {
	index               domain.Index
	summarizer          domain.Summarizer
	summaryMaxSentences int
	metrics             *metrics.Metrics
	logger              logrus.FieldLogger
	summary             string
}

var _ domain.SearchService = (*SearchServiceImpl)(nil)

func NewSearchService(index domain.Index, summarizer domain.Summarizer, summaryMaxSentences int, m *metrics.Metrics, logger logrus.FieldLogger) *SearchServiceImpl {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &SearchServiceImpl{
		index:               index,
		summarizer:          summarizer,
		summaryMaxSentences: summaryMaxSentences,
		metrics:             m,
		logger:              logger,
	}
}

// Ingest builds the index from documents and prepares the corpus summary.
// An empty corpus is rejected.
func (s *SearchServiceImpl) Ingest(documents []domain.Document) error {
	if len(documents) == 0 {
		return apperrors.New(apperrors.ErrValidation, "ingest", "no documents to index")
	}
	start := time.Now()
	if err := s.index.Build(documents); err != nil {
		return err
	}
	stats := s.index.Statistics()
	s.metrics.DocumentsIndexed.Set(float64(stats.DocumentCount))
	s.metrics.VocabularySize.Set(float64(stats.VocabularySize))

	var corpus strings.Builder
	for _, d := range documents {
		corpus.WriteString(d.Text)
		corpus.WriteString("\n")
	}
	// The index is built at this point; a summary failure only loses the header.
	summary, err := s.summarizer.Summarize(corpus.String(), s.summaryMaxSentences)
	if err != nil {
		s.logger.WithError(err).Warn("corpus summary unavailable")
	}
	s.summary = summary

	s.logger.WithFields(logrus.Fields{
		"documents":   stats.DocumentCount,
		"vocabulary":  stats.VocabularySize,
		"avg_length":  stats.AverageDocumentLength,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("corpus ingested")
	return nil
}

// Search runs a ranked query and records its outcome.
func (s *SearchServiceImpl) Search(query string, topK int) ([]domain.SearchResult, error) {
	start := time.Now()
	results, err := s.index.Search(query, topK)
	s.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.WithError(err).WithField("query", query).Warn("search failed")
		return nil, err
	}
	result := metrics.ResultHit
	if len(results) == 0 || results[0].Score == 0 {
		result = metrics.ResultZeroResult
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(result).Inc()
	s.logger.WithFields(logrus.Fields{
		"query":   query,
		"top_k":   topK,
		"results": len(results),
	}).Debug("query executed")
	return results, nil
}

// View returns a document by id, falling back to the closest known id.
// The returned document's ID tells the caller which id was resolved.
func (s *SearchServiceImpl) View(id string) (domain.Document, error) {
	doc, err := s.index.Document(id)
	if err == nil {
		s.metrics.LookupsTotal.WithLabelValues("exact").Inc()
		return doc, nil
	}
	if !apperrors.IsNotFound(err) {
		return domain.Document{}, err
	}
	resolved, err := s.index.Resolve(id)
	if err != nil {
		s.metrics.LookupsTotal.WithLabelValues("not_found").Inc()
		return domain.Document{}, err
	}
	s.metrics.LookupsTotal.WithLabelValues("fuzzy").Inc()
	s.logger.WithFields(logrus.Fields{"input": id, "resolved": resolved}).Info("document id resolved by fuzzy match")
	return s.index.Document(resolved)
}

func (s *SearchServiceImpl) Stats() domain.Stats { return s.index.Statistics() }

func (s *SearchServiceImpl) List() []domain.DocumentInfo { return s.index.Documents() }

func (s *SearchServiceImpl) Summary() string { return s.summary }
