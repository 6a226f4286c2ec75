package index

import (
	"cmp"
	"slices"
	"strings"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
)

// Search ranks every document against query by cosine similarity and
// returns at most topK results, highest score first and ties broken by
// ascending id. A query with no term in the vocabulary returns no results.
func (ix *Index) Search(query string, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, apperrors.Newf(apperrors.ErrValidation, "search", "top_k must be positive, got %d", topK)
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return nil, apperrors.New(apperrors.ErrState, "search", "index not built")
	}

	counts, length := countTerms(ix.tokenizer, query)
	q := ix.vectorize(counts, length)
	qNorm := q.Norm()
	if qNorm == 0 || len(ix.docs) == 0 {
		return []domain.SearchResult{}, nil
	}

	type scored struct {
		doc   *document
		score float64
	}
	scores := make([]scored, len(ix.docs))
	for i, doc := range ix.docs {
		scores[i] = scored{doc: doc, score: cosine(q, qNorm, doc.vector, doc.norm)}
	}
	slices.SortFunc(scores, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return strings.Compare(a.doc.ID, b.doc.ID)
	})

	topK = min(topK, len(scores))
	results := make([]domain.SearchResult, 0, topK)
	for _, s := range scores[:topK] {
		results = append(results, domain.SearchResult{
			DocumentID: s.doc.ID,
			Title:      s.doc.Title,
			Score:      s.score,
			Preview:    preview(s.doc.Text, ix.preview),
		})
	}
	return results, nil
}

// preview collapses whitespace and cuts the text to n runes.
func preview(text string, n int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
