package tui

import (
	"fmt"
	"strings"

	"irsearch/internal/domain"
)

// CommandKind identifies what a line of input asks for.
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandSearch
	CommandStats
	CommandList
	CommandView
	CommandHelp
	CommandQuit
)

// Command is a parsed line of input. Arg holds the query or document id.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand maps input to a command. Anything that is not a known
// command word is a search query.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)
	switch {
	case line == "":
		return Command{Kind: CommandEmpty}
	case lower == "quit" || lower == "exit" || lower == "q":
		return Command{Kind: CommandQuit}
	case lower == "stats":
		return Command{Kind: CommandStats}
	case lower == "list":
		return Command{Kind: CommandList}
	case lower == "help" || lower == "?":
		return Command{Kind: CommandHelp}
	case strings.HasPrefix(lower, "view "):
		return Command{Kind: CommandView, Arg: strings.TrimSpace(line[len("view "):])}
	default:
		return Command{Kind: CommandSearch, Arg: line}
	}
}

const helpText = `Commands:
  <query>      search the corpus
  stats        show corpus statistics
  list         list all documents
  view <id>    show a document (partial or misspelled ids are resolved)
  help         show this help
  quit         exit`

// FormatStats renders corpus statistics.
func FormatStats(s domain.Stats) string {
	status := "Not Built"
	if s.IsBuilt {
		status = "Built"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total Documents: %d\n", s.DocumentCount)
	fmt.Fprintf(&b, "Vocabulary Size: %d\n", s.VocabularySize)
	fmt.Fprintf(&b, "Index Status: %s\n", status)
	fmt.Fprintf(&b, "Average Document Length: %.1f words", s.AverageDocumentLength)
	return b.String()
}

// FormatList renders the document listing.
func FormatList(docs []domain.DocumentInfo) string {
	if len(docs) == 0 {
		return "No documents loaded."
	}
	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-24s %-32s %d words", d.ID, d.Title, d.Length)
	}
	return b.String()
}

// FormatResults renders ranked results as plain text.
func FormatResults(query string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No matching documents found for %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching documents for %q:\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Document ID: %s\n", r.DocumentID)
		fmt.Fprintf(&b, "   Relevance Score: %.4f\n", r.Score)
		fmt.Fprintf(&b, "   Preview: %s\n", r.Preview)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDocument renders a full document.
func FormatDocument(doc domain.Document) string {
	return fmt.Sprintf("DOCUMENT: %s (%s)\n\n%s", doc.Title, doc.ID, doc.Text)
}
