// Package index implements the TF-IDF index and cosine-similarity ranker.
//
// An Index starts empty, is built exactly once from a batch of documents,
// and is read-only afterwards. The vocabulary, IDF table and document
// vectors are computed together in Build, so every vector uses the same
// term positions and the same IDF weights.
package index

import (
	"io"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
)

const defaultPreviewLength = 200

var _ domain.Index = (*Index)(nil)

// Config tunes term weighting, result previews and fuzzy id lookup.
type Config struct {
	Weighting     Weighting
	PreviewLength int
	MaxDistance   int
}

type document struct {
	domain.Document
	length   int
	termFreq map[string]int
	vector   Vector
	norm     float64
}

// Index is a TF-IDF index over an in-memory corpus.
type Index struct {
	mu        sync.RWMutex
	tokenizer domain.Tokenizer
	weighting Weighting
	preview   int
	matcher   Matcher
	logger    logrus.FieldLogger

	built       bool
	docs        []*document
	byID        map[string]*document
	vocabulary  map[string]int
	terms       []string
	df          []int
	idf         []float64
	totalTokens int
}

// New creates an unbuilt index. A nil logger discards log output.
func New(tok domain.Tokenizer, cfg Config, logger logrus.FieldLogger) *Index {
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = defaultPreviewLength
	}
	if cfg.MaxDistance < 0 {
		cfg.MaxDistance = 0
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Index{
		tokenizer: tok,
		weighting: cfg.Weighting,
		preview:   cfg.PreviewLength,
		matcher:   Matcher{MaxDistance: cfg.MaxDistance},
		logger:    logger,
	}
}

// Build tokenizes every document, derives the vocabulary and IDF table from
// the whole batch, and computes each document's TF-IDF vector. Ids must be
// non-empty and unique. An empty batch produces a valid empty index.
// Build can only succeed once; later calls fail with a state error.
func (ix *Index) Build(documents []domain.Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.built {
		return apperrors.New(apperrors.ErrState, "build", "index already built")
	}

	docs := make([]*document, 0, len(documents))
	byID := make(map[string]*document, len(documents))
	totalTokens := 0
	for _, d := range documents {
		if strings.TrimSpace(d.ID) == "" {
			return apperrors.New(apperrors.ErrValidation, "build", "document id must not be empty")
		}
		if _, dup := byID[d.ID]; dup {
			return apperrors.Newf(apperrors.ErrValidation, "build", "duplicate document id %q", d.ID)
		}
		counts, length := countTerms(ix.tokenizer, d.Text)
		doc := &document{Document: d, length: length, termFreq: counts}
		docs = append(docs, doc)
		byID[d.ID] = doc
		totalTokens += length
		ix.logger.WithFields(logrus.Fields{
			"doc_id":      d.ID,
			"token_count": length,
			"terms":       len(counts),
		}).Debug("document tokenized")
	}
	slices.SortFunc(docs, func(a, b *document) int { return strings.Compare(a.ID, b.ID) })

	df := make(map[string]int)
	for _, doc := range docs {
		for term := range doc.termFreq {
			df[term]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	ix.vocabulary = make(map[string]int, len(terms))
	ix.terms = terms
	ix.df = make([]int, len(terms))
	ix.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		ix.vocabulary[term] = i
		ix.df[i] = df[term]
		ix.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	for _, doc := range docs {
		doc.vector = ix.vectorize(doc.termFreq, doc.length)
		doc.norm = doc.vector.Norm()
	}

	ix.docs = docs
	ix.byID = byID
	ix.totalTokens = totalTokens
	ix.built = true
	ix.logger.WithFields(logrus.Fields{
		"documents":  len(docs),
		"vocabulary": len(terms),
		"tokens":     totalTokens,
		"weighting":  ix.weighting.String(),
	}).Info("index built")
	return nil
}

// Statistics reports corpus metrics. Before Build it returns zeros with
// IsBuilt false.
func (ix *Index) Statistics() domain.Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return domain.Stats{}
	}
	stats := domain.Stats{
		DocumentCount:  len(ix.docs),
		VocabularySize: len(ix.terms),
		IsBuilt:        true,
	}
	if len(ix.docs) > 0 {
		stats.AverageDocumentLength = float64(ix.totalTokens) / float64(len(ix.docs))
	}
	return stats
}

// Document returns the document with exactly the given id.
func (ix *Index) Document(id string) (domain.Document, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return domain.Document{}, apperrors.New(apperrors.ErrState, "view", "index not built")
	}
	doc, ok := ix.byID[id]
	if !ok {
		return domain.Document{}, apperrors.Newf(apperrors.ErrNotFound, "view", "document %q", id)
	}
	return doc.Document, nil
}

// Documents lists the indexed documents ordered by id.
func (ix *Index) Documents() []domain.DocumentInfo {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.DocumentInfo, 0, len(ix.docs))
	for _, doc := range ix.docs {
		out = append(out, domain.DocumentInfo{
			ID:     doc.ID,
			Title:  doc.Title,
			Path:   doc.Path,
			Length: doc.length,
		})
	}
	return out
}

// Vocabulary returns the sorted vocabulary.
func (ix *Index) Vocabulary() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.terms)
}

// IDF returns the inverse document frequency of term.
func (ix *Index) IDF(term string) (float64, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pos, ok := ix.vocabulary[term]
	if !ok {
		return 0, false
	}
	return ix.idf[pos], true
}

// DocumentFrequency returns the number of documents containing term.
func (ix *Index) DocumentFrequency(term string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pos, ok := ix.vocabulary[term]
	if !ok {
		return 0
	}
	return ix.df[pos]
}

// Vector returns the TF-IDF weights of a document keyed by term.
func (ix *Index) Vector(id string) (map[string]float64, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.byID[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(doc.vector))
	for _, e := range doc.vector {
		out[ix.terms[e.Term]] = e.Weight
	}
	return out, true
}

// vectorize weights the counts that are in the vocabulary; unknown terms
// have no IDF and are skipped. Callers hold the lock.
func (ix *Index) vectorize(counts map[string]int, length int) Vector {
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	vec := make(Vector, 0, len(counts))
	for term, c := range counts {
		pos, ok := ix.vocabulary[term]
		if !ok {
			continue
		}
		vec = append(vec, Entry{Term: pos, Weight: ix.weighting.tf(c, length, maxCount) * ix.idf[pos]})
	}
	slices.SortFunc(vec, func(a, b Entry) int { return a.Term - b.Term })
	return vec
}

func countTerms(tok domain.Tokenizer, text string) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	for term := range tok.Terms(text) {
		counts[term]++
		total++
	}
	return counts, total
}
