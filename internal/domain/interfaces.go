package domain

import "iter"

// Document is a single plain-text file loaded into the system. Text is the
// raw content and is never modified after loading.
type Document struct {
	ID    string
	Title string
	Path  string
	Text  string
}

// DocumentInfo describes an indexed document without its text.
type DocumentInfo struct {
	ID     string
	Title  string
	Path   string
	Length int
}

// SearchResult is a ranked document with its relevance score.
type SearchResult struct {
	DocumentID string
	Title      string
	Score      float64
	Preview    string
}

// Stats summarizes the indexed corpus.
type Stats struct {
	DocumentCount         int
	VocabularySize        int
	AverageDocumentLength float64
	IsBuilt               bool
}

// Tokenizer turns text into a restartable sequence of normalized terms.
type Tokenizer interface {
	Terms(text string) iter.Seq[string]
}

// Index builds once from a batch of documents and answers queries afterwards.
type Index interface {
	Build(documents []Document) error
	Search(query string, topK int) ([]SearchResult, error)
	Statistics() Stats
	Document(id string) (Document, error)
	Resolve(id string) (string, error)
	Documents() []DocumentInfo
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// SearchService defines the operations exposed by the application core.
type SearchService interface {
	Ingest(documents []Document) error
	Search(query string, topK int) ([]SearchResult, error)
	Stats() Stats
	List() []DocumentInfo
	View(id string) (Document, error)
	Summary() string
}
