// Package loader reads plain-text documents from disk. A document's id is
// its file name without the extension and its title is the id with
// underscores turned into spaces, title-cased.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"irsearch/internal/apperrors"
	"irsearch/internal/domain"
)

const (
	DefaultExtension   = ".txt"
	defaultConcurrency = 8
)

// Loader reads files with a given extension into documents.
type Loader struct {
	ext         string
	concurrency int
	logger      logrus.FieldLogger
}

// New creates a loader. Empty ext means ".txt"; concurrency <= 0 uses a
// default bound on parallel reads.
func New(ext string, concurrency int, logger logrus.FieldLogger) *Loader {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Loader{ext: strings.ToLower(ext), concurrency: concurrency, logger: logger}
}

// LoadDir reads every matching file directly inside dir.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "load", "directory %q does not exist", dir)
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.matches(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return l.read(ctx, paths)
}

// LoadPaths reads files named by glob patterns. A pattern without glob
// matches is treated as a literal path. Files with other extensions are
// skipped.
func (l *Loader) LoadPaths(ctx context.Context, patterns []string) ([]domain.Document, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrValidation, "load", "bad pattern %q: %v", pattern, err)
		}
		if matches == nil {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !l.matches(m) {
				continue
			}
			clean := filepath.Clean(m)
			if _, dup := seen[clean]; dup {
				continue
			}
			seen[clean] = struct{}{}
			paths = append(paths, clean)
		}
	}
	return l.read(ctx, paths)
}

func (l *Loader) read(ctx context.Context, paths []string) ([]domain.Document, error) {
	docs := make([]domain.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			id := DocumentID(path)
			docs[i] = domain.Document{ID: id, Title: Title(id), Path: path, Text: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b domain.Document) int { return strings.Compare(a.ID, b.ID) })
	for i := 1; i < len(docs); i++ {
		if docs[i].ID == docs[i-1].ID {
			return nil, apperrors.Newf(apperrors.ErrValidation, "load",
				"duplicate document id %q from %s and %s", docs[i].ID, docs[i-1].Path, docs[i].Path)
		}
	}
	l.logger.WithField("documents", len(docs)).Info("documents loaded")
	return docs, nil
}

func (l *Loader) matches(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), l.ext)
}

// DocumentID strips the directory and extension from path.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Title turns an id like "machine_learning" into "Machine Learning".
func Title(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
