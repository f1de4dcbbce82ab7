package chunking

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Signals are the lightweight structural features the classifier inspects.
type Signals struct {
	// FencedCodeBlocks is the number of fenced code blocks.
	FencedCodeBlocks int `json:"fenced_code_blocks"`
	// Headings is the total number of headings at any level.
	Headings int `json:"headings"`
	// HeadingLevels maps heading level (1-6) to count.
	HeadingLevels map[int]int `json:"heading_levels,omitempty"`
	// OrderedListItems is the number of items in ordered (numbered) lists.
	OrderedListItems int `json:"ordered_list_items"`
	// ListItems is the total number of list items, ordered or not.
	ListItems int `json:"list_items"`
	// Paragraphs is the number of paragraph blocks.
	Paragraphs int `json:"paragraphs"`
	// AvgSentenceLen is the mean sentence length in runes.
	AvgSentenceLen float64 `json:"avg_sentence_len"`
}

// analyzer extracts structural signals from markdown via goldmark AST parsing.
type analyzer struct {
	parser goldmark.Markdown
}

func newAnalyzer() *analyzer {
	return &analyzer{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Analyze parses the text and returns its structural signals.
// It is deterministic and never fails; empty input yields zero signals.
func Analyze(input string) Signals {
	return newAnalyzer().analyze(input)
}

func (a *analyzer) analyze(input string) Signals {
	sig := Signals{HeadingLevels: make(map[int]int)}
	if strings.TrimSpace(input) == "" {
		return sig
	}

	source := []byte(input)
	doc := a.parser.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			sig.FencedCodeBlocks++
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			sig.Headings++
			sig.HeadingLevels[node.Level]++
		case *ast.List:
			if node.IsOrdered() {
				sig.OrderedListItems += countChildren(node)
			}
		case *ast.ListItem:
			sig.ListItems++
		case *ast.Paragraph:
			sig.Paragraphs++
		}
		return ast.WalkContinue, nil
	})

	sig.AvgSentenceLen = avgSentenceLength(input)
	return sig
}

func countChildren(n ast.Node) int {
	count := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		count++
	}
	return count
}

// avgSentenceLength returns the mean rune length of sentences, splitting on
// terminal punctuation. Whitespace-only fragments are ignored.
func avgSentenceLength(input string) float64 {
	sentences := strings.FieldsFunc(input, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	total, count := 0, 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		total += utf8.RuneCountInString(s)
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
